package sweeper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/hibiken/asynq"
)

type recordingDistributor struct {
	notifications []worker.PayloadSendNotification
}

func (d *recordingDistributor) DistributeTaskSendNotification(ctx context.Context, payload *worker.PayloadSendNotification, opts ...asynq.Option) error {
	d.notifications = append(d.notifications, *payload)
	return nil
}

func (d *recordingDistributor) DistributeTaskExpireListing(ctx context.Context, payload *worker.PayloadExpireListing, opts ...asynq.Option) error {
	return nil
}

func TestNotifyDowngradeSendsOnePerSuspendedListing(t *testing.T) {
	distributor := &recordingDistributor{}
	s := &Sweeper{taskDistributor: distributor}

	sub := db.SellerSubscription{ID: 7, SellerID: "seller-1"}
	result := db.DowngradeSellerTxResult{
		Suspended: []db.Listing{
			{ID: 101, SellerID: "seller-1", Title: "2016 Honda City 1.5 VX"},
			{ID: 102, SellerID: "seller-1", Title: "2018 Mitsubishi Montero Sport GLS"},
		},
	}

	s.notifyDowngrade(context.Background(), sub, result)

	require.Len(t, distributor.notifications, 3)

	summary := distributor.notifications[0]
	require.Equal(t, "subscription_expired", summary.Type)
	require.Equal(t, "seller-1", summary.RecipientID)
	require.Equal(t, "7", summary.ReferenceID)

	perListing := distributor.notifications[1:]
	require.Equal(t, "listing_suspended", perListing[0].Type)
	require.Equal(t, "101", perListing[0].ReferenceID)
	require.Contains(t, perListing[0].Message, "2016 Honda City 1.5 VX")
	require.Equal(t, "listing_suspended", perListing[1].Type)
	require.Equal(t, "102", perListing[1].ReferenceID)
	require.Contains(t, perListing[1].Message, "2018 Mitsubishi Montero Sport GLS")
}

func TestNotifyDowngradeWithNothingSuspended(t *testing.T) {
	distributor := &recordingDistributor{}
	s := &Sweeper{taskDistributor: distributor}

	s.notifyDowngrade(context.Background(), db.SellerSubscription{ID: 8, SellerID: "seller-2"}, db.DowngradeSellerTxResult{})

	require.Len(t, distributor.notifications, 1)
	require.Equal(t, "subscription_expired", distributor.notifications[0].Type)
}
