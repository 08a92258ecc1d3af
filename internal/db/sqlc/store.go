package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides all functions to execute db queries and transactions.
type Store interface {
	Querier

	GetListingDetailsByID(ctx context.Context, q *Queries, listingID int64) (ListingDetails, error)

	CreateListingTx(ctx context.Context, arg CreateListingTxParams) (Listing, error)
	SubmitListingTx(ctx context.Context, arg SubmitListingTxParams) (Listing, error)
	UpdateListingTx(ctx context.Context, arg UpdateListingTxParams) (UpdateListingTxResult, error)
	ApproveListingTx(ctx context.Context, arg ApproveListingTxParams) (Listing, error)
	RejectListingTx(ctx context.Context, arg RejectListingTxParams) (Listing, error)
	MarkListingSoldTx(ctx context.Context, arg MarkListingSoldTxParams) (MarkListingSoldTxResult, error)
	ReserveListingTx(ctx context.Context, arg ReserveListingTxParams) (Listing, error)
	ExpireListingTx(ctx context.Context, listingID int64) (ExpireListingTxResult, error)
	RemoveListingTx(ctx context.Context, arg RemoveListingTxParams) (Listing, error)
	DowngradeSellerTx(ctx context.Context, arg DowngradeSellerTxParams) (DowngradeSellerTxResult, error)
	BanSellerTx(ctx context.Context, arg BanSellerTxParams) (BanSellerTxResult, error)
}

type SQLStore struct {
	*Queries
	connPool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) Store {
	return &SQLStore{
		Queries:  New(db),
		connPool: db,
	}
}

// Ping checks if the database connection is alive.
func (store *SQLStore) Ping(ctx context.Context) error {
	return store.connPool.Ping(ctx)
}

// ExecTx executes fn inside a database transaction.
func (store *SQLStore) ExecTx(ctx context.Context, fn func(qTx *Queries) error) error {
	tx, err := store.connPool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(store.Queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
