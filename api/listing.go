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
	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/mailer"
	"github.com/Shaloh69/autohub-be/internal/token"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/validator"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type createListingRequest struct {
	BrandID    int64  `json:"brand_id" binding:"required"`
	ModelID    int64  `json:"model_id" binding:"required"`
	CategoryID *int64 `json:"category_id"`

	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Year        int32  `json:"year" binding:"required"`
	Price       int64  `json:"price" binding:"required"`
	Mileage     *int32 `json:"mileage"`

	FuelType     string `json:"fuel_type" binding:"required"`
	Transmission string `json:"transmission" binding:"required"`
	Condition    string `json:"condition" binding:"required"`

	EngineSizeCc  *int32  `json:"engine_size_cc"`
	HorsepowerHp  *int32  `json:"horsepower_hp"`
	Drivetrain    *string `json:"drivetrain"`
	ExteriorColor *string `json:"exterior_color"`
	InteriorColor *string `json:"interior_color"`
	Vin           *string `json:"vin"`
	UnderWarranty *bool   `json:"under_warranty"`

	AccidentHistory   *bool  `json:"accident_history"`
	FloodHistory      *bool  `json:"flood_history"`
	HasServiceRecords *bool  `json:"has_service_records"`
	OwnerCount        *int32 `json:"owner_count"`

	City          *string  `json:"city"`
	Province      *string  `json:"province"`
	Region        *string  `json:"region"`
	Barangay      *string  `json:"barangay"`
	AddressDetail *string  `json:"address_detail"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

func (req *createListingRequest) validate() []*FieldViolation {
	var violations []*FieldViolation

	if err := validator.ValidateTitle(req.Title); err != nil {
		violations = append(violations, fieldViolation("title", err))
	}
	if err := validator.ValidateDescription(req.Description); err != nil {
		violations = append(violations, fieldViolation("description", err))
	}
	if err := validator.ValidateYear(req.Year); err != nil {
		violations = append(violations, fieldViolation("year", err))
	}
	if err := validator.ValidatePrice(req.Price); err != nil {
		violations = append(violations, fieldViolation("price", err))
	}
	if req.Mileage != nil {
		if err := validator.ValidateMileage(*req.Mileage); err != nil {
			violations = append(violations, fieldViolation("mileage", err))
		}
	}
	if err := listing.IsValidFuelType(req.FuelType); err != nil {
		violations = append(violations, fieldViolation("fuel_type", err))
	}
	if err := listing.IsValidTransmission(req.Transmission); err != nil {
		violations = append(violations, fieldViolation("transmission", err))
	}
	if err := listing.IsValidCondition(req.Condition); err != nil {
		violations = append(violations, fieldViolation("condition", err))
	}
	if req.Drivetrain != nil {
		if err := listing.IsValidDrivetrain(*req.Drivetrain); err != nil {
			violations = append(violations, fieldViolation("drivetrain", err))
		}
	}
	if req.Vin != nil {
		if err := validator.ValidateVin(*req.Vin); err != nil {
			violations = append(violations, fieldViolation("vin", err))
		}
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := validator.ValidateCoordinates(*req.Latitude, *req.Longitude); err != nil {
			violations = append(violations, fieldViolation("latitude", err))
		}
	}

	return violations
}

//	@Summary		Create a new listing
//	@Description	Creates a draft listing for the authenticated seller, subject to the tier's listing quota.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			request	body		createListingRequest	true	"Listing fields"
//	@Success		201		{object}	db.Listing				"Created draft listing"
//	@Failure		422		{object}	object					"Listing quota exceeded"
//	@Router			/listings [post]
func (server *Server) createListing(c *gin.Context) {
	sellerID := authPayload(c).Subject

	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, failedValidationError(violations))
		return
	}

	limits, err := server.sellerLimits(c, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	server.resolveLocation(c, &req)

	created, err := server.dbStore.CreateListingTx(c.Request.Context(), db.CreateListingTxParams{
		CreateListingParams: db.CreateListingParams{
			Code:              util.GenerateListingCode(),
			Slug:              util.GenerateRandomSlug(req.Title),
			SellerID:          sellerID,
			BrandID:           req.BrandID,
			ModelID:           req.ModelID,
			CategoryID:        req.CategoryID,
			Title:             req.Title,
			Description:       req.Description,
			Year:              req.Year,
			Price:             req.Price,
			Currency:          "PHP",
			Mileage:           req.Mileage,
			FuelType:          listing.FuelType(req.FuelType),
			Transmission:      listing.Transmission(req.Transmission),
			Condition:         listing.Condition(req.Condition),
			EngineSizeCc:      req.EngineSizeCc,
			HorsepowerHp:      req.HorsepowerHp,
			Drivetrain:        req.Drivetrain,
			ExteriorColor:     req.ExteriorColor,
			InteriorColor:     req.InteriorColor,
			Vin:               req.Vin,
			UnderWarranty:     req.UnderWarranty,
			AccidentHistory:   req.AccidentHistory,
			FloodHistory:      req.FloodHistory,
			HasServiceRecords: req.HasServiceRecords,
			OwnerCount:        req.OwnerCount,
			City:              req.City,
			Province:          req.Province,
			Region:            req.Region,
			Barangay:          req.Barangay,
			AddressDetail:     req.AddressDetail,
			Latitude:          req.Latitude,
			Longitude:         req.Longitude,
		},
		Limits: limits,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		switch {
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueListingVinConstraint:
			err = fmt.Errorf("a listing with VIN %s already exists", *req.Vin)
			c.JSON(http.StatusConflict, errorResponse(err))
			return
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueListingSlugConstraint:
			c.JSON(http.StatusConflict, errorResponse(err))
			return
		}

		handleListingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// resolveLocation fills in whichever half of the location the seller left out.
// Coordinates produce an address via reverse geocoding; an address without
// coordinates is forward geocoded so the listing can participate in radius
// search. Failures are logged and ignored, a listing without coordinates is
// still valid.
func (server *Server) resolveLocation(c *gin.Context, req *createListingRequest) {
	ctx := c.Request.Context()

	switch {
	case req.Latitude != nil && req.Longitude != nil:
		if req.City != nil && req.Province != nil {
			return
		}
		addr, err := server.geocoder.ReverseGeocode(ctx, *req.Latitude, *req.Longitude)
		if err != nil {
			log.Warn().Err(err).Msg("failed to reverse geocode listing location")
			return
		}
		if req.City == nil && addr.City != "" {
			req.City = &addr.City
		}
		if req.Province == nil && addr.Province != "" {
			req.Province = &addr.Province
		}
		if req.Region == nil && addr.Region != "" {
			req.Region = &addr.Region
		}
		if req.Barangay == nil && addr.Barangay != "" {
			req.Barangay = &addr.Barangay
		}
	case req.City != nil:
		query := *req.City
		if req.Province != nil {
			query += ", " + *req.Province
		}
		lat, lng, err := server.geocoder.ForwardGeocode(ctx, query)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("failed to geocode listing location")
			return
		}
		req.Latitude = &lat
		req.Longitude = &lng
	}
}

//	@Summary		Get listing details
//	@Description	Returns the full detail view of a listing, including brand, model, seller and images.
//	@Tags			listings
//	@Produce		json
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.ListingDetails
//	@Router			/listings/{id} [get]
func (server *Server) getListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	details, err := server.dbStore.GetListingDetailsByID(c.Request.Context(), nil, listingID)
	if err != nil {
		handleListingError(c, err)
		return
	}

	// A sold or removed listing stays reachable by ID for history, but only
	// publicly visible listings count views.
	if listing.PubliclyVisible(details.Status, details.ApprovalStatus) {
		viewerID := c.ClientIP()
		if payload, exists := c.Get(authorizationPayloadKey); exists {
			viewerID = payload.(*token.Payload).Subject
		}
		if err := server.countListingView(c, details.ID, viewerID); err != nil {
			log.Warn().Err(err).Int64("listing_id", details.ID).Msg("failed to count listing view")
		}
	}

	c.JSON(http.StatusOK, details)
}

// viewTrackingWindow is how long a viewer's mark lives in Redis; at most one
// unique view per listing per viewer within it.
const viewTrackingWindow = 24 * time.Hour

// countListingView increments the view counters. Uniqueness is tracked per
// viewer per day in Redis.
func (server *Server) countListingView(c *gin.Context, listingID int64, viewerID string) error {
	key := fmt.Sprintf("listing:viewed:%d:%s", listingID, viewerID)
	isUnique, err := server.redisClient.SetNX(c.Request.Context(), key, 1, viewTrackingWindow).Result()
	if err != nil {
		// Degrade to non-unique counting when Redis is unavailable.
		isUnique = false
	}

	return server.dbStore.IncrementListingViews(c.Request.Context(), db.IncrementListingViewsParams{
		ID:       listingID,
		IsUnique: isUnique,
	})
}

//	@Summary		Get listing by slug
//	@Tags			listings
//	@Produce		json
//	@Param			slug	path		string	true	"Listing slug"
//	@Success		200		{object}	db.Listing
//	@Router			/listings/by-slug/{slug} [get]
func (server *Server) getListingBySlug(c *gin.Context) {
	l, err := server.dbStore.GetListingBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

type updateListingRequest struct {
	BrandID    *int64 `json:"brand_id"`
	ModelID    *int64 `json:"model_id"`
	CategoryID *int64 `json:"category_id"`

	Title       *string `json:"title"`
	Description *string `json:"description"`
	Year        *int32  `json:"year"`
	Price       *int64  `json:"price"`
	Mileage     *int32  `json:"mileage"`

	FuelType     *string `json:"fuel_type"`
	Transmission *string `json:"transmission"`
	Condition    *string `json:"condition"`

	EngineSizeCc  *int32  `json:"engine_size_cc"`
	HorsepowerHp  *int32  `json:"horsepower_hp"`
	Drivetrain    *string `json:"drivetrain"`
	ExteriorColor *string `json:"exterior_color"`
	InteriorColor *string `json:"interior_color"`
	Vin           *string `json:"vin"`
	UnderWarranty *bool   `json:"under_warranty"`

	AccidentHistory   *bool  `json:"accident_history"`
	FloodHistory      *bool  `json:"flood_history"`
	HasServiceRecords *bool  `json:"has_service_records"`
	OwnerCount        *int32 `json:"owner_count"`

	City          *string  `json:"city"`
	Province      *string  `json:"province"`
	Region        *string  `json:"region"`
	Barangay      *string  `json:"barangay"`
	AddressDetail *string  `json:"address_detail"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

func (req *updateListingRequest) validate() []*FieldViolation {
	var violations []*FieldViolation

	if req.Title != nil {
		if err := validator.ValidateTitle(*req.Title); err != nil {
			violations = append(violations, fieldViolation("title", err))
		}
	}
	if req.Description != nil {
		if err := validator.ValidateDescription(*req.Description); err != nil {
			violations = append(violations, fieldViolation("description", err))
		}
	}
	if req.Year != nil {
		if err := validator.ValidateYear(*req.Year); err != nil {
			violations = append(violations, fieldViolation("year", err))
		}
	}
	if req.Price != nil {
		if err := validator.ValidatePrice(*req.Price); err != nil {
			violations = append(violations, fieldViolation("price", err))
		}
	}
	if req.Mileage != nil {
		if err := validator.ValidateMileage(*req.Mileage); err != nil {
			violations = append(violations, fieldViolation("mileage", err))
		}
	}
	if req.FuelType != nil {
		if err := listing.IsValidFuelType(*req.FuelType); err != nil {
			violations = append(violations, fieldViolation("fuel_type", err))
		}
	}
	if req.Transmission != nil {
		if err := listing.IsValidTransmission(*req.Transmission); err != nil {
			violations = append(violations, fieldViolation("transmission", err))
		}
	}
	if req.Condition != nil {
		if err := listing.IsValidCondition(*req.Condition); err != nil {
			violations = append(violations, fieldViolation("condition", err))
		}
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := validator.ValidateCoordinates(*req.Latitude, *req.Longitude); err != nil {
			violations = append(violations, fieldViolation("latitude", err))
		}
	}

	return violations
}

//	@Summary		Edit a listing
//	@Description	Applies a partial edit and recomputes the listing's scores. Editing a significant field of an approved listing sends it back to moderation; the response reports this.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path		int						true	"Listing ID"
//	@Param			request	body		updateListingRequest	true	"Fields to change"
//	@Success		200		{object}	db.UpdateListingTxResult
//	@Router			/listings/{id} [patch]
func (server *Server) updateListing(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	var req updateListingRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if violations := req.validate(); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, failedValidationError(violations))
		return
	}

	details := db.UpdateListingDetailsParams{
		ID:                listingID,
		BrandID:           req.BrandID,
		ModelID:           req.ModelID,
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Description:       req.Description,
		Year:              req.Year,
		Price:             req.Price,
		Mileage:           req.Mileage,
		EngineSizeCc:      req.EngineSizeCc,
		HorsepowerHp:      req.HorsepowerHp,
		Drivetrain:        req.Drivetrain,
		ExteriorColor:     req.ExteriorColor,
		InteriorColor:     req.InteriorColor,
		Vin:               req.Vin,
		UnderWarranty:     req.UnderWarranty,
		AccidentHistory:   req.AccidentHistory,
		FloodHistory:      req.FloodHistory,
		HasServiceRecords: req.HasServiceRecords,
		OwnerCount:        req.OwnerCount,
		City:              req.City,
		Province:          req.Province,
		Region:            req.Region,
		Barangay:          req.Barangay,
		AddressDetail:     req.AddressDetail,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
	}
	if req.FuelType != nil {
		ft := listing.FuelType(*req.FuelType)
		details.FuelType = &ft
	}
	if req.Transmission != nil {
		tr := listing.Transmission(*req.Transmission)
		details.Transmission = &tr
	}
	if req.Condition != nil {
		cond := listing.Condition(*req.Condition)
		details.Condition = &cond
	}

	result, err := server.dbStore.UpdateListingTx(c.Request.Context(), db.UpdateListingTxParams{
		SellerID:                   sellerID,
		UpdateListingDetailsParams: details,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniqueListingVinConstraint {
			err = fmt.Errorf("a listing with VIN %s already exists", *req.Vin)
			c.JSON(http.StatusConflict, errorResponse(err))
			return
		}

		handleListingError(c, err)
		return
	}

	if result.RequiresReapproval {
		// The listing left public view; its scheduled expiry no longer
		// applies until it is approved again.
		err = server.taskInspector.DeleteTask(c.Request.Context(), worker.QueueDefault, worker.ExpireListingTaskID(result.Listing.ID))
		if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			log.Warn().Err(err).Int64("listing_id", result.Listing.ID).Msg("failed to cancel expiry task")
		}

		server.eventSender.Broadcast(event.Event{
			Topic: event.TopicModeration,
			Type:  event.EventTypeListingSubmitted,
			Data:  result.Listing,
		})
	}

	c.JSON(http.StatusOK, result)
}

//	@Summary		Submit a listing for moderation
//	@Description	Moves a draft or rejected listing into the moderation queue. The quota check is repeated here because submission is what starts consuming a slot.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Listing
//	@Router			/listings/{id}/submit [patch]
func (server *Server) submitListing(c *gin.Context) {
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

	// Mandatory-field completeness is the orchestrator's job; the state
	// machine only validates the transition itself.
	if err = validator.ValidateForSubmission(db.SnapshotFromListing(l)); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	limits, err := server.sellerLimits(c, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	submitted, err := server.dbStore.SubmitListingTx(c.Request.Context(), db.SubmitListingTxParams{
		ListingID: listingID,
		SellerID:  sellerID,
		Limits:    limits,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	server.eventSender.Broadcast(event.Event{
		Topic: event.TopicModeration,
		Type:  event.EventTypeListingSubmitted,
		Data:  submitted,
	})

	c.JSON(http.StatusOK, submitted)
}

type markListingSoldRequest struct {
	BuyerID *string `json:"buyer_id"`
}

//	@Summary		Mark a listing as sold
//	@Description	Closes out a listing and records the sale transaction at the current listing price.
//	@Tags			listings
//	@Accept			json
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path		int						true	"Listing ID"
//	@Param			request	body		markListingSoldRequest	false	"Optional buyer reference"
//	@Success		200		{object}	db.MarkListingSoldTxResult
//	@Router			/listings/{id}/sold [patch]
func (server *Server) markListingSold(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	var req markListingSoldRequest
	if err = c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	result, err := server.dbStore.MarkListingSoldTx(c.Request.Context(), db.MarkListingSoldTxParams{
		ListingID: listingID,
		SellerID:  sellerID,
		BuyerID:   req.BuyerID,
		Code:      util.GenerateTransactionCode(),
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	// The sold listing no longer expires.
	err = server.taskInspector.DeleteTask(c.Request.Context(), worker.QueueDefault, worker.ExpireListingTaskID(listingID))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		log.Warn().Err(err).Int64("listing_id", listingID).Msg("failed to cancel expiry task")
	}

	if server.mailService != nil {
		if seller, uerr := server.dbStore.GetUserByID(c.Request.Context(), sellerID); uerr == nil {
			merr := server.mailService.SendEmail(mailer.EmailHeader{
				Subject: "Your car has been sold on AutoHub",
				To:      []string{seller.Email},
			}, mailer.SaleReceiptBody(result.Listing.Title, result.Transaction.Price))
			if merr != nil {
				log.Warn().Err(merr).Str("seller_id", sellerID).Msg("failed to send sale receipt email")
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

//	@Summary		Reserve a listing
//	@Description	Places an approved listing on hold. It keeps its quota slot but leaves search until released or sold.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Listing
//	@Router			/listings/{id}/reserve [patch]
func (server *Server) reserveListing(c *gin.Context) {
	server.toggleReservation(c, false)
}

//	@Summary		Release a reservation
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Listing
//	@Router			/listings/{id}/unreserve [patch]
func (server *Server) unreserveListing(c *gin.Context) {
	server.toggleReservation(c, true)
}

func (server *Server) toggleReservation(c *gin.Context, release bool) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	l, err := server.dbStore.ReserveListingTx(c.Request.Context(), db.ReserveListingTxParams{
		ListingID: listingID,
		SellerID:  sellerID,
		Release:   release,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

//	@Summary		Remove a listing
//	@Description	Soft-deletes a listing. The row stays queryable by ID but the state is terminal.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			id	path		int	true	"Listing ID"
//	@Success		200	{object}	db.Listing
//	@Router			/listings/{id} [delete]
func (server *Server) removeListing(c *gin.Context) {
	sellerID := authPayload(c).Subject

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid listing ID format")))
		return
	}

	removed, err := server.dbStore.RemoveListingTx(c.Request.Context(), db.RemoveListingTxParams{
		ListingID: listingID,
		SellerID:  sellerID,
	})
	if err != nil {
		handleListingError(c, err)
		return
	}

	err = server.taskInspector.DeleteTask(c.Request.Context(), worker.QueueDefault, worker.ExpireListingTaskID(listingID))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		log.Warn().Err(err).Int64("listing_id", listingID).Msg("failed to cancel expiry task")
	}

	c.JSON(http.StatusOK, removed)
}

//	@Summary		List the authenticated seller's listings
//	@Description	Removed listings are hidden unless requested explicitly with status=removed.
//	@Tags			listings
//	@Produce		json
//	@Security		accessToken
//	@Param			status	query	string	false	"Filter by listing status"
//	@Param			page	query	int		false	"Page number (1-based)"
//	@Success		200		{array}	db.Listing
//	@Router			/users/me/listings [get]
func (server *Server) listMyListings(c *gin.Context) {
	sellerID := authPayload(c).Subject

	var status *string
	if s := c.Query("status"); s != "" {
		if err := listing.IsValidStatus(s); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}
		status = &s
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 32)
	if page < 1 {
		page = 1
	}
	const pageSize = 20

	listings, err := server.dbStore.ListSellerListings(c.Request.Context(), db.ListSellerListingsParams{
		SellerID: sellerID,
		Status:   status,
		Limit:    pageSize,
		Offset:   int32(page-1) * pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, listings)
}

//	@Summary		Upload listing images
//	@Description	Uploads one or more images, subject to the tier's per-listing image cap. The first image of a listing becomes its primary image.
//	@Tags			listings
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		accessToken
//	@Param			id		path	int		true	"Listing ID"
//	@Param			images	formData	file	true	"Image files"
//	@Success		201		{array}	db.ListingImage
//	@Router			/listings/{id}/images [post]
func (server *Server) uploadListingImages(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("no image files provided")))
		return
	}

	limits, err := server.sellerLimits(c, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	existing, err := server.dbStore.CountListingImages(c.Request.Context(), listingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	if int32(existing)+int32(len(files)) > limits.MaxImagesPerListing {
		err = fmt.Errorf("image limit exceeded: tier allows %d images per listing, listing has %d", limits.MaxImagesPerListing, existing)
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err))
		return
	}

	urls, err := server.uploadFileToCloudinary("listing", l.Code, "listings", files...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	images := make([]db.ListingImage, 0, len(urls))
	for i, url := range urls {
		img, err := server.dbStore.AddListingImage(c.Request.Context(), db.AddListingImageParams{
			ListingID: listingID,
			URL:       url,
			IsPrimary: existing == 0 && i == 0,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse(err))
			return
		}
		images = append(images, img)
	}

	c.JSON(http.StatusCreated, images)
}
