package api

import (
	"fmt"
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/event"
	"github.com/Shaloh69/autohub-be/internal/geocoding"
	"github.com/Shaloh69/autohub-be/internal/mailer"
	"github.com/Shaloh69/autohub-be/internal/ratelimit"
	"github.com/Shaloh69/autohub-be/internal/storage"
	"github.com/Shaloh69/autohub-be/internal/token"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router          *gin.Engine
	dbStore         db.Store
	fileStore       storage.FileStore
	tokenMaker      token.Maker
	config          *util.Config
	redisClient     *redis.Client
	mailService     mailer.EmailSender
	taskDistributor worker.TaskDistributor
	taskInspector   worker.TaskInspector
	geocoder        geocoding.Geocoder
	searchLimiter   *ratelimit.Limiter
	eventSender     event.EventSender
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, redisClient *redis.Client, taskDistributor worker.TaskDistributor, taskInspector worker.TaskInspector, config *util.Config, mailService mailer.EmailSender, eventSender event.EventSender) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	// Create a new Cloudinary instance
	fileStore := storage.NewCloudinaryStore(config.CloudinaryURL)
	log.Info().Msg("Cloudinary store created successfully ✅")

	// Create the geocoder for address resolution
	geocoder := geocoding.NewNominatimGeocoder(*config)
	log.Info().Msg("Geocoder created successfully ✅")

	searchLimiter := ratelimit.NewLimiter(redisClient, "ratelimit:search", config.SearchRateLimit, time.Minute)

	server := &Server{
		dbStore:         store,
		tokenMaker:      tokenMaker,
		config:          config,
		redisClient:     redisClient,
		fileStore:       fileStore,
		mailService:     mailService,
		taskDistributor: taskDistributor,
		taskInspector:   taskInspector,
		geocoder:        geocoder,
		searchLimiter:   searchLimiter,
		eventSender:     eventSender,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	// Public catalog and search. The ranker only ever sees publicly visible
	// listings; no auth needed.
	v1.GET("/listings/search", rateLimitMiddleware(server.searchLimiter), server.searchListings)
	v1.GET("/listings/by-slug/:slug", server.getListingBySlug)
	v1.GET("/listings/:id", optionalAuthMiddleware(server.tokenMaker), server.getListing)
	v1.GET("/brands", server.listBrands)
	v1.GET("/brands/:id/models", server.listBrandModels)
	v1.GET("/categories", server.listCategories)
	v1.GET("/subscription-plans", server.listSubscriptionPlans)

	// Seller-facing listing management.
	listingGroup := v1.Group("/listings", authMiddleware(server.tokenMaker))
	{
		listingGroup.POST("", server.createListing)
		listingGroup.PATCH(":id", server.updateListing)
		listingGroup.PATCH(":id/submit", server.submitListing)
		listingGroup.PATCH(":id/sold", server.markListingSold)
		listingGroup.PATCH(":id/reserve", server.reserveListing)
		listingGroup.PATCH(":id/unreserve", server.unreserveListing)
		listingGroup.PATCH(":id/feature", server.featureListing)
		listingGroup.DELETE(":id", server.removeListing)
		listingGroup.POST(":id/images", server.uploadListingImages)
		listingGroup.PATCH(":id/images/:imageID/primary", server.setPrimaryListingImage)
		listingGroup.GET(":id/transaction", server.getListingTransaction)

		// Buyer engagement counters.
		listingGroup.POST(":id/favorite", server.favoriteListing)
		listingGroup.DELETE(":id/favorite", server.unfavoriteListing)
		listingGroup.POST(":id/inquire", server.inquireListing)
	}

	userGroup := v1.Group("/users/me", authMiddleware(server.tokenMaker))
	{
		userGroup.GET("listings", server.listMyListings)
		userGroup.GET("listings/stream", server.streamSellerEvents)
	}

	sellerGroup := v1.Group("/sellers/:sellerID", authMiddleware(server.tokenMaker), requiredSellerRole(server.dbStore))
	{
		subscriptionGroup := sellerGroup.Group("subscriptions")
		{
			subscriptionGroup.GET("active", server.getCurrentActiveSubscription)
			subscriptionGroup.GET("", server.listSellerSubscriptions)
			subscriptionGroup.POST("upgrade", server.upgradeSubscription)
		}
	}

	// Moderator surface.
	moderatorGroup := v1.Group("/mod", authMiddleware(server.tokenMaker), requiredModeratorRole(server.dbStore))
	{
		moderatorGroup.GET("listings", server.listPendingListings)
		moderatorGroup.GET("listings/stream", server.streamModerationEvents)
		moderatorGroup.PATCH("listings/:id/approve", server.approveListing)
		moderatorGroup.PATCH("listings/:id/reject", server.rejectListing)
		moderatorGroup.PATCH("sellers/:id/ban", server.banSeller)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
