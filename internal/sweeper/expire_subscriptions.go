package sweeper

import (
	"context"
	"fmt"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/quota"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/rs/zerolog/log"
)

func (s *Sweeper) expireLapsedSubscriptions() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	lapsed, err := s.store.ExpireLapsedSubscriptions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to expire lapsed subscriptions")
		return
	}
	if len(lapsed) == 0 {
		return
	}

	log.Info().Int("count", len(lapsed)).Msg("expired lapsed subscriptions")

	for _, sub := range lapsed {
		// The seller drops to the free tier; listings beyond the lower cap
		// are suspended, newest kept.
		result, err := s.store.DowngradeSellerTx(ctx, db.DowngradeSellerTxParams{
			SellerID: sub.SellerID,
			Limits:   quota.FreeTier,
		})
		if err != nil {
			log.Error().
				Err(err).
				Str("seller_id", sub.SellerID).
				Msg("failed to downgrade seller after subscription lapse")
			continue
		}

		log.Info().
			Str("seller_id", sub.SellerID).
			Int("suspended", len(result.Suspended)).
			Msg("seller downgraded to free tier")

		s.notifyDowngrade(ctx, sub, result)
	}
}

// notifyDowngrade tells the seller their subscription lapsed, then sends one
// notification per suspended listing so they can see exactly which cars went
// dark.
func (s *Sweeper) notifyDowngrade(ctx context.Context, sub db.SellerSubscription, result db.DowngradeSellerTxResult) {
	err := s.taskDistributor.DistributeTaskSendNotification(ctx, &worker.PayloadSendNotification{
		RecipientID: sub.SellerID,
		Title:       "Your subscription has expired",
		Message: fmt.Sprintf("Your subscription has ended and your account moved to the free tier. %d of your listings were suspended; renew to restore them.",
			len(result.Suspended)),
		Type:        "subscription_expired",
		ReferenceID: fmt.Sprintf("%d", sub.ID),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("seller_id", sub.SellerID).
			Msg("failed to send notification to seller")
	}

	for _, suspended := range result.Suspended {
		err = s.taskDistributor.DistributeTaskSendNotification(ctx, &worker.PayloadSendNotification{
			RecipientID: sub.SellerID,
			Title:       "Listing suspended",
			Message: fmt.Sprintf("Your listing %q was suspended because your plan now allows fewer active listings. Renew your subscription to restore it.",
				util.TruncateContent(suspended.Title, 60)),
			Type:        "listing_suspended",
			ReferenceID: fmt.Sprintf("%d", suspended.ID),
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("seller_id", sub.SellerID).
				Int64("listing_id", suspended.ID).
				Msg("failed to send suspension notification to seller")
		}
	}
}
