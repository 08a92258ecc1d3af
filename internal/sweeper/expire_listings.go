package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/rs/zerolog/log"
)

func (s *Sweeper) expireOverdueListings() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	expired, err := s.store.ExpireOverdueListings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to expire overdue listings")
		return
	}
	if len(expired) == 0 {
		return
	}

	log.Info().Int("count", len(expired)).Msg("expired overdue listings")

	for _, l := range expired {
		err = s.taskDistributor.DistributeTaskSendNotification(ctx, &worker.PayloadSendNotification{
			RecipientID: l.SellerID,
			Title:       "Your listing has expired",
			Message: fmt.Sprintf("Your listing %q has reached the end of its publication window. Renew it to put it back in front of buyers.",
				util.TruncateContent(l.Title, 60)),
			Type:        "listing_expired",
			ReferenceID: fmt.Sprintf("%d", l.ID),
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("seller_id", l.SellerID).
				Int64("listing_id", l.ID).
				Msg("failed to send notification to seller")
		}
	}
}
