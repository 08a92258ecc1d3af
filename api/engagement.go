package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// visibleListing loads a listing and checks it is a candidate for buyer
// engagement. Counters only move on listings a buyer can actually see.
func (server *Server) visibleListing(c *gin.Context) (db.Listing, bool) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return db.Listing{}, false
	}

	l, err := server.dbStore.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return db.Listing{}, false
	}
	if !listing.PubliclyVisible(l.Status, l.ApprovalStatus) {
		c.JSON(http.StatusNotFound, errorResponse(fmt.Errorf("listing ID %d not found", listingID)))
		return db.Listing{}, false
	}

	return l, true
}

//	@Summary		Favorite a listing
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path	int	true	"Listing ID"
//	@Success		204
//	@Router			/listings/{id}/favorite [post]
func (server *Server) favoriteListing(c *gin.Context) {
	l, ok := server.visibleListing(c)
	if !ok {
		return
	}

	if err := server.dbStore.AddListingFavorite(c.Request.Context(), l.ID); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

//	@Summary		Remove a listing from favorites
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path	int	true	"Listing ID"
//	@Success		204
//	@Router			/listings/{id}/favorite [delete]
func (server *Server) unfavoriteListing(c *gin.Context) {
	l, ok := server.visibleListing(c)
	if !ok {
		return
	}

	if err := server.dbStore.RemoveListingFavorite(c.Request.Context(), l.ID); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

//	@Summary		Inquire about a listing
//	@Description	Counts the inquiry and notifies the seller that a buyer is interested.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path	int	true	"Listing ID"
//	@Success		204
//	@Router			/listings/{id}/inquire [post]
func (server *Server) inquireListing(c *gin.Context) {
	l, ok := server.visibleListing(c)
	if !ok {
		return
	}

	if err := server.dbStore.IncrementListingInquiries(c.Request.Context(), l.ID); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	err := server.taskDistributor.DistributeTaskSendNotification(c.Request.Context(), &worker.PayloadSendNotification{
		RecipientID: l.SellerID,
		Title:       "A buyer is interested in your listing",
		Message:     fmt.Sprintf("Someone inquired about %q. Check your messages to follow up.", util.TruncateContent(l.Title, 60)),
		Type:        "listing_inquiry",
		ReferenceID: fmt.Sprintf("%d", l.ID),
	}, asynq.Queue(worker.QueueDefault))
	if err != nil {
		log.Warn().Err(err).Int64("listing_id", l.ID).Msg("failed to send inquiry notification")
	}

	c.Status(http.StatusNoContent)
}

// featuredDuration is how long one featuring lasts before the slot frees up.
const featuredDuration = 7 * 24 * time.Hour

//	@Summary		Feature a listing
//	@Description	Pins one of the seller's live listings to the top of default search ordering, subject to the tier's featured slots.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Listing
//	@Failure		422	{object}	object	"Tier has no featured slots"
//	@Router			/listings/{id}/feature [patch]
func (server *Server) featureListing(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	l, err := server.dbStore.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}
	if l.SellerID != sellerID {
		c.JSON(http.StatusForbidden, errorResponse(db.ErrListingNotOwned))
		return
	}
	if !listing.PubliclyVisible(l.Status, l.ApprovalStatus) {
		c.JSON(http.StatusConflict, errorResponse(fmt.Errorf("only live listings can be featured")))
		return
	}

	limits, err := server.sellerLimits(c, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	if limits.FeaturedSlots <= 0 {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(fmt.Errorf("your plan has no featured slots")))
		return
	}

	until := time.Now().Add(featuredDuration)
	featured, err := server.dbStore.SetListingFeatured(c.Request.Context(), db.SetListingFeaturedParams{
		ID:            listingID,
		IsFeatured:    true,
		FeaturedUntil: &until,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, featured)
}

//	@Summary		Set the primary image of a listing
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path	int	true	"Listing ID"
//	@Param			imageID	path	int	true	"Image ID"
//	@Success		204
//	@Router			/listings/{id}/images/{imageID}/primary [patch]
func (server *Server) setPrimaryListingImage(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}
	imageID, err := strconv.ParseInt(c.Param("imageID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid image ID format")))
		return
	}

	l, err := server.dbStore.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}
	if l.SellerID != sellerID {
		c.JSON(http.StatusForbidden, errorResponse(db.ErrListingNotOwned))
		return
	}

	if err = server.dbStore.SetListingPrimaryImage(c.Request.Context(), db.SetListingPrimaryImageParams{
		ListingID: listingID,
		ImageID:   imageID,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.Status(http.StatusNoContent)
}

//	@Summary		Get the sale record of a sold listing
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Transaction
//	@Router			/listings/{id}/transaction [get]
func (server *Server) getListingTransaction(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	l, err := server.dbStore.GetListingByID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}
	if l.SellerID != sellerID {
		c.JSON(http.StatusForbidden, errorResponse(db.ErrListingNotOwned))
		return
	}

	tx, err := server.dbStore.GetTransactionByListingID(c.Request.Context(), listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}
