package handlers

import (
	"net/http"
	"strconv"

	"github.com/fundspace/backend/internal/repositories"
	"github.com/fundspace/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	socialGraph *services.SocialGraphService
	followRepo  repositories.FollowRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(socialGraph *services.SocialGraphService, followRepo repositories.FollowRepository) *FollowHandler {
	return &FollowHandler{socialGraph: socialGraph, followRepo: followRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow-status", h.GetFollowStatus)
	g.GET("/users/:id/follow-stats", h.GetFollowStats)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialGraph.FollowUser(c.Request().Context(), session.UserID, targetID); err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialGraph.UnfollowUser(c.Request().Context(), session.UserID, targetID); err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// GetFollowStatus reports whether the viewer follows the target user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	isFollowing, err := h.socialGraph.CheckFollowStatus(c.Request().Context(), session.UserID, targetID)
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"is_following": isFollowing}})
}

// GetFollowStats returns follower/following counts for a user
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.socialGraph.GetFollowStats(c.Request().Context(), targetID)
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// GetFollowers lists the members following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	users, err := h.followRepo.GetFollowers(c.Request().Context(), targetID, listLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetFollowing lists the members a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	users, err := h.followRepo.GetFollowing(c.Request().Context(), targetID, listLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

func listLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return limit
}
