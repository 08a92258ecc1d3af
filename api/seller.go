package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/quota"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SubscriptionDetailsResponse is the seller's current tier with usage.
type SubscriptionDetailsResponse struct {
	// PlanID is 0 on the free tier.
	PlanID   int64  `json:"plan_id"`
	PlanName string `json:"plan_name"`

	// MaxActiveListings uses -1 as the unlimited sentinel.
	MaxActiveListings int32 `json:"max_active_listings"`
	ListingsUsed      int32 `json:"listings_used"`
	// ListingsRemaining is null when the tier is unlimited.
	ListingsRemaining *int32 `json:"listings_remaining"`

	MaxImagesPerListing int32 `json:"max_images_per_listing"`
	FeaturedSlots       int32 `json:"featured_slots"`
	BoostCredits        int32 `json:"boost_credits"`
	ListingDurationDays int32 `json:"listing_duration_days"`

	IsUnlimited bool `json:"is_unlimited"`

	// CurrentPeriodEnd is null on the free tier.
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
}

//	@Summary		Get the seller's active subscription
//	@Description	Returns the seller's current tier with quota usage. Sellers without an active subscription are on the free tier.
//	@Tags			sellers
//	@Produce		json
//	@Security		accessToken
//	@Param			sellerID	path		string	true	"Seller ID"
//	@Success		200			{object}	SubscriptionDetailsResponse
//	@Router			/sellers/{sellerID}/subscriptions/active [get]
func (server *Server) getCurrentActiveSubscription(c *gin.Context) {
	seller := c.MustGet(sellerPayloadKey).(*db.User)

	resp := SubscriptionDetailsResponse{PlanName: "Free"}
	limits := quota.FreeTier

	sub, err := server.dbStore.GetActiveSubscription(c.Request.Context(), seller.ID)
	if err == nil {
		plan, perr := server.dbStore.GetSubscriptionPlanByID(c.Request.Context(), sub.PlanID)
		if perr != nil {
			c.JSON(http.StatusInternalServerError, errorResponse(perr))
			return
		}
		limits = quota.Limits{
			MaxActiveListings:   plan.MaxActiveListings,
			MaxImagesPerListing: plan.MaxImagesPerListing,
			FeaturedSlots:       plan.FeaturedSlots,
			BoostCredits:        plan.BoostCredits,
			ListingDurationDays: plan.ListingDurationDays,
		}
		resp.PlanID = plan.ID
		resp.PlanName = plan.Name
		resp.CurrentPeriodEnd = &sub.CurrentPeriodEnd
	} else if !errors.Is(err, db.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	used, err := server.dbStore.CountQuotaConsumingListings(c.Request.Context(), seller.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	resp.MaxActiveListings = limits.MaxActiveListings
	resp.ListingsUsed = int32(used)
	resp.MaxImagesPerListing = limits.MaxImagesPerListing
	resp.FeaturedSlots = limits.FeaturedSlots
	resp.BoostCredits = limits.BoostCredits
	resp.ListingDurationDays = limits.ListingDurationDays
	resp.IsUnlimited = limits.Unlimited()
	if !limits.Unlimited() {
		remaining := limits.MaxActiveListings - int32(used)
		if remaining < 0 {
			remaining = 0
		}
		resp.ListingsRemaining = &remaining
	}

	c.JSON(http.StatusOK, resp)
}

type upgradeSubscriptionRequest struct {
	PlanID       int64  `json:"plan_id" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
	AutoRenew    bool   `json:"auto_renew"`
}

//	@Summary		Subscribe to or upgrade a plan
//	@Description	Starts a new subscription period on the chosen plan. Any current subscription is cancelled.
//	@Tags			sellers
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			sellerID	path		string						true	"Seller ID"
//	@Param			request		body		upgradeSubscriptionRequest	true	"Plan and billing cycle"
//	@Success		201			{object}	db.SellerSubscription
//	@Router			/sellers/{sellerID}/subscriptions/upgrade [post]
func (server *Server) upgradeSubscription(c *gin.Context) {
	seller := c.MustGet(sellerPayloadKey).(*db.User)

	var req upgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	plan, err := server.dbStore.GetSubscriptionPlanByID(c.Request.Context(), req.PlanID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("subscription plan ID %d not found", req.PlanID)
			c.JSON(http.StatusNotFound, errorResponse(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	if current, cerr := server.dbStore.GetActiveSubscription(c.Request.Context(), seller.ID); cerr == nil {
		if _, cancelErr := server.dbStore.CancelSellerSubscription(c.Request.Context(), current.ID); cancelErr != nil {
			c.JSON(http.StatusInternalServerError, errorResponse(cancelErr))
			return
		}
	} else if !errors.Is(cerr, db.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, errorResponse(cerr))
		return
	}

	now := time.Now()
	periodEnd := now.AddDate(0, 1, 0)
	if req.BillingCycle == "yearly" {
		periodEnd = now.AddDate(1, 0, 0)
	}

	sub, err := server.dbStore.CreateSellerSubscription(c.Request.Context(), db.CreateSellerSubscriptionParams{
		SellerID:           seller.ID,
		PlanID:             plan.ID,
		BillingCycle:       req.BillingCycle,
		Price:              plan.Price,
		Currency:           plan.Currency,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd,
		AutoRenew:          req.AutoRenew,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	log.Info().
		Str("seller_id", seller.ID).
		Str("plan", plan.Name).
		Str("billing_cycle", req.BillingCycle).
		Msg("seller subscription created")

	c.JSON(http.StatusCreated, sub)
}

//	@Summary		List the seller's subscription history
//	@Tags			sellers
//	@Produce		json
//	@Security		accessToken
//	@Param			sellerID	path	string	true	"Seller ID"
//	@Success		200			{array}	db.SellerSubscription
//	@Router			/sellers/{sellerID}/subscriptions [get]
func (server *Server) listSellerSubscriptions(c *gin.Context) {
	seller := c.MustGet(sellerPayloadKey).(*db.User)

	subs, err := server.dbStore.ListSellerSubscriptions(c.Request.Context(), seller.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, subs)
}
