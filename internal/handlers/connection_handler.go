package handlers

import (
	"net/http"

	"github.com/fundspace/backend/internal/models"
	"github.com/fundspace/backend/internal/repositories"
	"github.com/fundspace/backend/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles connection request HTTP requests
type ConnectionHandler struct {
	socialGraph    *services.SocialGraphService
	connectionRepo repositories.ConnectionRepository
	userRepo       repositories.UserRepository
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(socialGraph *services.SocialGraphService, connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository) *ConnectionHandler {
	return &ConnectionHandler{
		socialGraph:    socialGraph,
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.POST("/connections", h.SendConnectionRequest)
	g.POST("/connections/:id/accept", h.AcceptConnectionRequest)
	g.DELETE("/connections/:id/request", h.WithdrawConnectionRequest)
	g.DELETE("/connections/:id", h.RemoveConnection)
	g.GET("/connections/:id/status", h.GetConnectionStatus)
	g.GET("/connections/:id/mutual-count", h.GetMutualConnectionsCount)
	g.GET("/connections/pending", h.GetPendingRequests)
	g.GET("/connections", h.GetConnections)
}

// SendConnectionRequest sends a connection request to another member
func (h *ConnectionHandler) SendConnectionRequest(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req models.SendConnectionRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipient ID")
	}

	if err := h.socialGraph.SendConnectionRequest(c.Request().Context(), session.UserID, recipientID); err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"status": models.ConnectionStatusPending}})
}

// AcceptConnectionRequest accepts a pending request sent by the member in
// the path
func (h *ConnectionHandler) AcceptConnectionRequest(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	otherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialGraph.AcceptConnectionRequest(c.Request().Context(), session.UserID, otherID); err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": models.ConnectionStatusAccepted}})
}

// WithdrawConnectionRequest withdraws a pending request the viewer sent
func (h *ConnectionHandler) WithdrawConnectionRequest(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	otherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialGraph.WithdrawConnectionRequest(c.Request().Context(), session.UserID, otherID); err != nil {
		return serviceHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveConnection removes an accepted connection with the member in the
// path
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	otherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialGraph.RemoveConnection(c.Request().Context(), session.UserID, otherID); err != nil {
		return serviceHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetConnectionStatus returns the viewer-relative connection state with the
// member in the path
func (h *ConnectionHandler) GetConnectionStatus(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	otherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	state, err := h.socialGraph.GetConnectionStatus(c.Request().Context(), session.UserID, otherID)
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": state})
}

// GetMutualConnectionsCount returns the approximate shared-network size with
// the member in the path
func (h *ConnectionHandler) GetMutualConnectionsCount(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	otherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	count := h.socialGraph.MutualConnectionsCount(c.Request().Context(), session.UserID, otherID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// GetPendingRequests lists pending requests addressed to the viewer,
// enriched with requester profiles
func (h *ConnectionHandler) GetPendingRequests(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	requests, err := h.connectionRepo.GetPendingRequestsFor(c.Request().Context(), session.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type pendingRequest struct {
		models.Connection
		Requester models.UserCompact `json:"requester"`
	}
	enriched := make([]pendingRequest, len(requests))
	for i, req := range requests {
		enriched[i] = pendingRequest{Connection: req}
		if user, err := h.userRepo.GetUserByID(c.Request().Context(), req.RequesterID); err == nil {
			enriched[i].Requester = user.ToCompact()
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": enriched}})
}

// GetConnections lists the viewer's accepted connections
func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	users, err := h.connectionRepo.GetConnectedUsers(c.Request().Context(), session.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}
