package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/quota"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHandleListingError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "record not found",
			err:        db.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped record not found",
			err:        fmt.Errorf("failed to get listing: %w", db.ErrRecordNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "listing not owned",
			err:        db.ErrListingNotOwned,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "invalid lifecycle transition",
			err:        &listing.InvalidTransitionError{From: listing.StatusSold, To: listing.StatusPending},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "quota exceeded",
			err:        &quota.ExceededError{Used: 3, Limit: 3},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "listing not editable",
			err:        db.ErrListingNotEditable,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "concurrent modification",
			err:        db.ErrConcurrentModification,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "empty rejection reason",
			err:        db.ErrEmptyRejectionReason,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			handleListingError(c, tc.err)
			require.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
