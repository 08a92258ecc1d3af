package db

import (
	"context"
)

type CreateTransactionParams struct {
	Code      string
	ListingID int64
	SellerID  string
	BuyerID   *string
	Price     int64
	Currency  string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	var t Transaction
	err := q.db.QueryRow(ctx, `INSERT INTO transactions (code, listing_id, seller_id, buyer_id, price, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, code, listing_id, seller_id, buyer_id, price, currency, created_at`,
		arg.Code, arg.ListingID, arg.SellerID, arg.BuyerID, arg.Price, arg.Currency).
		Scan(&t.ID, &t.Code, &t.ListingID, &t.SellerID, &t.BuyerID, &t.Price, &t.Currency, &t.CreatedAt)
	return t, err
}

func (q *Queries) GetTransactionByListingID(ctx context.Context, listingID int64) (Transaction, error) {
	var t Transaction
	err := q.db.QueryRow(ctx, `SELECT id, code, listing_id, seller_id, buyer_id, price, currency, created_at
		FROM transactions WHERE listing_id = $1`, listingID).
		Scan(&t.ID, &t.Code, &t.ListingID, &t.SellerID, &t.BuyerID, &t.Price, &t.Currency, &t.CreatedAt)
	return t, err
}
