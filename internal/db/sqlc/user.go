package db

import (
	"context"
)

const userColumns = `id, full_name, email, phone_number, role, avatar_url, is_banned, banned_at, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Role,
		&u.AvatarURL, &u.IsBanned, &u.BannedAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (q *Queries) BanUser(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, `UPDATE users SET
		is_banned = true, banned_at = now(), updated_at = now()
	WHERE id = $1
	RETURNING `+userColumns, id))
}
