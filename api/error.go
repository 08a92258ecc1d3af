package api

import (
	"errors"
	"net/http"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/quota"
	"github.com/gin-gonic/gin"
)

var (
	ErrSellerIDMismatch       = errors.New("seller ID in URL does not match authenticated user ID")
	ErrInsufficientPermission = errors.New("requires moderator role")
	ErrSellerBanned           = errors.New("seller account is banned")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}

// handleListingError maps the typed errors of the listing domain to stable
// response codes. Handlers call it for any error coming out of the store.
func handleListingError(c *gin.Context, err error) {
	var (
		transitionErr *listing.InvalidTransitionError
		quotaErr      *quota.ExceededError
	)

	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err))
	case errors.Is(err, db.ErrListingNotOwned):
		c.JSON(http.StatusForbidden, errorResponse(err))
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, errorResponse(err))
	case errors.As(err, &quotaErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err))
	case errors.Is(err, db.ErrListingNotEditable):
		c.JSON(http.StatusConflict, errorResponse(err))
	case errors.Is(err, db.ErrConcurrentModification):
		c.JSON(http.StatusConflict, errorResponse(err))
	case errors.Is(err, db.ErrEmptyRejectionReason):
		c.JSON(http.StatusBadRequest, errorResponse(err))
	default:
		c.JSON(http.StatusInternalServerError, errorResponse(err))
	}
}
