package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/quota"
	"github.com/Shaloh69/autohub-be/internal/token"
	"github.com/gin-gonic/gin"
)

func (server *Server) uploadFileToCloudinary(key string, value string, folder string, files ...*multipart.FileHeader) (uploadedFileURLs []string, err error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	for _, file := range files {
		// Open and read file
		currentFile, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer currentFile.Close()

		fileBytes, err := io.ReadAll(currentFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		fileName := fmt.Sprintf("%s_%s_%d", key, value, time.Now().Unix())

		uploadedFileURL, err := server.fileStore.UploadFile(fileBytes, fileName, folder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload file: %w", err)
		}

		uploadedFileURLs = append(uploadedFileURLs, uploadedFileURL)
	}

	return uploadedFileURLs, nil
}

func authPayload(c *gin.Context) *token.Payload {
	return c.MustGet(authorizationPayloadKey).(*token.Payload)
}

// sellerLimits resolves the seller's current tier. A seller without an active
// subscription is on the free tier; the tier never comes from the client.
func (server *Server) sellerLimits(c *gin.Context, sellerID string) (quota.Limits, error) {
	sub, err := server.dbStore.GetActiveSubscription(c.Request.Context(), sellerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return quota.FreeTier, nil
		}
		return quota.Limits{}, err
	}

	plan, err := server.dbStore.GetSubscriptionPlanByID(c.Request.Context(), sub.PlanID)
	if err != nil {
		return quota.Limits{}, err
	}

	return quota.Limits{
		MaxActiveListings:   plan.MaxActiveListings,
		MaxImagesPerListing: plan.MaxImagesPerListing,
		FeaturedSlots:       plan.FeaturedSlots,
		BoostCredits:        plan.BoostCredits,
		ListingDurationDays: plan.ListingDurationDays,
	}, nil
}
