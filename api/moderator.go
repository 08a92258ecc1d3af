package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/event"
	"github.com/Shaloh69/autohub-be/internal/mailer"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

//	@Summary		List listings awaiting moderation
//	@Description	Returns the moderation queue, oldest first.
//	@Tags			moderator
//	@Produce		json
//	@Security		accessToken
//	@Param			page	query	int	false	"Page number (1-based)"
//	@Success		200		{array}	db.Listing	"Pending listings"
//	@Router			/mod/listings [get]
func (server *Server) listPendingListings(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 32)
	if page < 1 {
		page = 1
	}
	const pageSize = 20

	listings, err := server.dbStore.ListPendingListings(c.Request.Context(), db.ListPendingListingsParams{
		Limit:  pageSize,
		Offset: int32(page-1) * pageSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending listings")
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, listings)
}

type approveListingRequest struct {
	Notes *string `json:"notes"`
}

//	@Summary		Approve a pending listing
//	@Description	Publishes the listing. The publication window starts now and runs for the seller's plan duration; expiry is scheduled as a background task.
//	@Tags			moderator
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path		int						true	"Listing ID"
//	@Param			request	body		approveListingRequest	false	"Optional moderator notes"
//	@Success		200		{object}	db.Listing				"Approved listing"
//	@Router			/mod/listings/{id}/approve [patch]
func (server *Server) approveListing(c *gin.Context) {
	moderator := c.MustGet(moderatorPayloadKey).(*db.User)

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	var req approveListingRequest
	if err = c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	l, err := server.dbStore.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}

	// The publication window comes from the seller's plan, not the request.
	limits, err := server.sellerLimits(c, l.SellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	approved, err := server.dbStore.ApproveListingTx(c.Request.Context(), db.ApproveListingTxParams{
		ListingID:    listingID,
		ModeratorID:  moderator.ID,
		Notes:        req.Notes,
		DurationDays: limits.ListingDurationDays,
		AfterApprove: func(l db.Listing) error {
			// Schedule the expiry task for the moment the window closes.
			return server.taskDistributor.DistributeTaskExpireListing(c.Request.Context(), &worker.PayloadExpireListing{
				ListingID: l.ID,
			}, asynq.ProcessAt(*l.ExpiresAt), asynq.Queue(worker.QueueDefault))
		},
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue(worker.QueueCritical),
	}

	err = server.taskDistributor.DistributeTaskSendNotification(c.Request.Context(), &worker.PayloadSendNotification{
		RecipientID: approved.SellerID,
		Title:       "Your listing has been approved",
		Message:     fmt.Sprintf("Your listing %q is now live and visible to buyers until %s.", approved.Title, approved.ExpiresAt.Format("January 2, 2006")),
		Type:        "listing_approved",
		ReferenceID: fmt.Sprintf("%d", approved.ID),
	}, opts...)
	if err != nil {
		log.Err(err).Msgf("failed to send notification to user ID %s", approved.SellerID)
	}

	server.eventSender.Broadcast(event.Event{
		Topic: event.SellerTopic(approved.SellerID),
		Type:  event.EventTypeListingApproved,
		Data:  approved,
	})

	c.JSON(http.StatusOK, approved)
}

type rejectListingRequest struct {
	Reason string  `json:"reason" binding:"required"`
	Notes  *string `json:"notes"`
}

//	@Summary		Reject a pending listing
//	@Description	Bounces the listing back to the seller with a mandatory reason.
//	@Tags			moderator
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path		int						true	"Listing ID"
//	@Param			request	body		rejectListingRequest	true	"Rejection reason"
//	@Success		200		{object}	db.Listing				"Rejected listing"
//	@Router			/mod/listings/{id}/reject [patch]
func (server *Server) rejectListing(c *gin.Context) {
	moderator := c.MustGet(moderatorPayloadKey).(*db.User)

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	var req rejectListingRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	rejected, err := server.dbStore.RejectListingTx(c.Request.Context(), db.RejectListingTxParams{
		ListingID:   listingID,
		ModeratorID: moderator.ID,
		Reason:      req.Reason,
		Notes:       req.Notes,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue(worker.QueueCritical),
	}

	err = server.taskDistributor.DistributeTaskSendNotification(c.Request.Context(), &worker.PayloadSendNotification{
		RecipientID: rejected.SellerID,
		Title:       "Your listing was not approved",
		Message:     fmt.Sprintf("Your listing %q was rejected. Reason: %s", rejected.Title, req.Reason),
		Type:        "listing_rejected",
		ReferenceID: fmt.Sprintf("%d", rejected.ID),
	}, opts...)
	if err != nil {
		log.Err(err).Msgf("failed to send notification to user ID %s", rejected.SellerID)
	}

	if server.mailService != nil {
		if seller, uerr := server.dbStore.GetUserByID(c.Request.Context(), rejected.SellerID); uerr == nil {
			merr := server.mailService.SendEmail(mailer.EmailHeader{
				Subject: "Your AutoHub listing was not approved",
				To:      []string{seller.Email},
			}, mailer.RejectionBody(rejected.Title, req.Reason))
			if merr != nil {
				log.Warn().Err(merr).Str("seller_id", rejected.SellerID).Msg("failed to send rejection email")
			}
		}
	}

	server.eventSender.Broadcast(event.Event{
		Topic: event.SellerTopic(rejected.SellerID),
		Type:  event.EventTypeListingRejected,
		Data:  rejected,
	})

	c.JSON(http.StatusOK, rejected)
}

type banSellerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

//	@Summary		Ban a seller
//	@Description	Bans the seller and suspends all of their approved listings in one transaction.
//	@Tags			moderator
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path		string				true	"Seller ID"
//	@Param			request	body		banSellerRequest	true	"Ban reason"
//	@Success		200		{object}	db.BanSellerTxResult
//	@Router			/mod/sellers/{id}/ban [patch]
func (server *Server) banSeller(c *gin.Context) {
	sellerID := c.Param("id")

	var req banSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.dbStore.BanSellerTx(c.Request.Context(), db.BanSellerTxParams{
		SellerID: sellerID,
		Reason:   req.Reason,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	// Cancel the expiry tasks of the suspended listings; they are no longer
	// on the clock.
	for _, l := range result.Suspended {
		err = server.taskInspector.DeleteTask(c.Request.Context(), worker.QueueDefault, worker.ExpireListingTaskID(l.ID))
		if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			log.Warn().Err(err).Int64("listing_id", l.ID).Msg("failed to cancel expiry task")
		}
	}

	log.Info().
		Str("seller_id", sellerID).
		Str("reason", req.Reason).
		Int("suspended_listings", len(result.Suspended)).
		Time("banned_at", time.Now()).
		Msg("seller banned")

	c.JSON(http.StatusOK, result)
}
