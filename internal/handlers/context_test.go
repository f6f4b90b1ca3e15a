package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fundspace/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestServiceHTTPError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{services.ErrMissingIdentifier, http.StatusBadRequest},
		{services.ErrSelfFollow, http.StatusBadRequest},
		{services.ErrSelfConnection, http.StatusBadRequest},
		{services.ErrConnectionNotPending, http.StatusBadRequest},
		{services.ErrNotConnected, http.StatusBadRequest},
		{services.ErrAlreadyFollowing, http.StatusConflict},
		{services.ErrDuplicateConnection, http.StatusConflict},
		{services.ErrNotRecipient, http.StatusForbidden},
		{services.ErrNotRequester, http.StatusForbidden},
		{services.ErrConnectionNotFound, http.StatusNotFound},
		{errors.New("store exploded"), http.StatusInternalServerError},
		// Wrapped errors map the same as their sentinels.
		{fmt.Errorf("checking existing follow: %w", services.ErrAlreadyFollowing), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var httpErr *echo.HTTPError
			require.ErrorAs(t, serviceHTTPError(tt.err), &httpErr)
			require.Equal(t, tt.code, httpErr.Code)
		})
	}
}
