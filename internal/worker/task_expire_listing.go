package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadExpireListing struct {
	ListingID int64 `json:"listing_id"`
}

// ExpireListingTaskID builds the stable task ID for a listing's expiry task,
// so approval can schedule it and a sale or removal can cancel it.
func ExpireListingTaskID(listingID int64) string {
	return fmt.Sprintf("listing:expire:%d", listingID)
}

// DistributeTaskExpireListing schedules the publication-window expiry of an
// approved listing. Callers pass asynq.ProcessAt with the listing's
// expires_at timestamp.
func (distributor *RedisTaskDistributor) DistributeTaskExpireListing(
	ctx context.Context,
	payload *PayloadExpireListing,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := ExpireListingTaskID(payload.ListingID)
	task := asynq.NewTask(TaskExpireListing, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Int64("listing_id", payload.ListingID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("listing expiry task scheduled")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskExpireListing(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadExpireListing
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	log.Info().
		Int64("listing_id", payload.ListingID).
		Msg("processing listing expiry task")

	result, err := processor.store.ExpireListingTx(ctx, payload.ListingID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			log.Info().
				Int64("listing_id", payload.ListingID).
				Msg("listing not found, skipping task")
			return nil
		}
		log.Error().
			Err(err).
			Int64("listing_id", payload.ListingID).
			Msg("failed to expire listing")
		return err
	}

	// The listing may have been sold, removed, or re-moderated since the
	// task was scheduled. The transaction only expires approved listings.
	if !result.Expired {
		log.Info().
			Int64("listing_id", payload.ListingID).
			Str("current_status", string(result.Listing.Status)).
			Msg("listing is no longer approved, skipping task")
		return nil
	}

	expired := result.Listing
	log.Info().
		Int64("listing_id", expired.ID).
		Str("new_status", string(expired.Status)).
		Msg("listing expired")

	err = processor.distributor.DistributeTaskSendNotification(ctx, &PayloadSendNotification{
		RecipientID: expired.SellerID,
		Title:       "Your listing has expired",
		Message: fmt.Sprintf("Your listing %q has reached the end of its publication window. Renew it to put it back in front of buyers.",
			util.TruncateContent(expired.Title, 60)),
		Type:        "listing_expired",
		ReferenceID: fmt.Sprintf("%d", expired.ID),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("seller_id", expired.SellerID).
			Int64("listing_id", expired.ID).
			Msg("failed to send notification to seller")
	}

	return nil
}
