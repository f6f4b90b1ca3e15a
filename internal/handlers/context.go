package handlers

import (
	"errors"
	"net/http"

	"github.com/fundspace/backend/internal/middleware"
	"github.com/fundspace/backend/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentSession pulls the injected session off the request context.
func currentSession(c echo.Context) (*middleware.Session, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return session, nil
}

// pathUUID parses a uuid path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return id, nil
}

// serviceHTTPError maps social graph service errors onto HTTP statuses.
// Validation failures are 400, conflicts 409, state-machine authorization
// failures 403, missing rows 404, everything else 500.
func serviceHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrMissingIdentifier),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrSelfConnection),
		errors.Is(err, services.ErrConnectionNotPending),
		errors.Is(err, services.ErrNotConnected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrDuplicateConnection):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotRecipient),
		errors.Is(err, services.ErrNotRequester):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConnectionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
