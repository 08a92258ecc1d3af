package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/ratelimit"
	"github.com/Shaloh69/autohub-be/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	authorizationPayloadKey = "authPayload"
	sellerPayloadKey        = "sellerPayload"
	moderatorPayloadKey     = "moderatorPayload"
)

// authMiddleware authenticates the user.
func authMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		authorizationHeaderType := fields[0]
		if authorizationHeaderType != authorizationTypeBearer {
			err := errors.New("unsupported authorization header type")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		accessToken := fields[1]
		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		ctx.Set(authorizationPayloadKey, payload)
		ctx.Next()
	}
}

// optionalAuthMiddleware attaches the auth payload when a valid token is
// present, but lets anonymous requests through.
func optionalAuthMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			ctx.Next()
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 || fields[0] != authorizationTypeBearer {
			ctx.Next()
			return
		}

		if payload, err := tokenMaker.VerifyToken(fields[1]); err == nil {
			ctx.Set(authorizationPayloadKey, payload)
		}

		ctx.Next()
	}
}

func requiredSellerRole(dbStore db.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
		authenticatedUserID := authPayload.Subject
		sellerID := ctx.Param("sellerID")

		seller, err := dbStore.GetUserByID(ctx, sellerID)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				err = fmt.Errorf("seller ID %s not found", sellerID)
				ctx.AbortWithStatusJSON(http.StatusNotFound, errorResponse(err))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
			return
		}

		if authenticatedUserID != seller.ID {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse(ErrSellerIDMismatch))
			return
		}

		if seller.IsBanned {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse(ErrSellerBanned))
			return
		}

		ctx.Set(sellerPayloadKey, &seller)
		ctx.Next()
	}
}

func requiredModeratorRole(dbStore db.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

		user, err := dbStore.GetUserByID(ctx, authPayload.Subject)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, errorResponse(err))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
			return
		}

		if user.Role != db.UserRoleModerator {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse(ErrInsufficientPermission))
			return
		}

		ctx.Set(moderatorPayloadKey, &user)
		ctx.Next()
	}
}

// rateLimitMiddleware throttles anonymous traffic per client IP.
func rateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		allowed, err := limiter.Allow(ctx.Request.Context(), ctx.ClientIP())
		if err != nil {
			// Redis being down should not take search down with it.
			ctx.Next()
			return
		}
		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse(errors.New("too many requests, slow down")))
			return
		}
		ctx.Next()
	}
}
