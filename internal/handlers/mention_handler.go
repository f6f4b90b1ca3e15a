package handlers

import (
	"net/http"

	"github.com/fundspace/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MentionHandler handles mention autocomplete HTTP requests
type MentionHandler struct {
	resolver *services.MentionResolver
}

// NewMentionHandler creates a new MentionHandler
func NewMentionHandler(resolver *services.MentionResolver) *MentionHandler {
	return &MentionHandler{resolver: resolver}
}

// RegisterMentionRoutes registers mention routes
func (h *MentionHandler) RegisterMentionRoutes(g *echo.Group) {
	g.GET("/mentions/suggestions", h.GetSuggestions)
}

// GetSuggestions resolves the q query parameter into mention candidates for
// the viewer
func (h *MentionHandler) GetSuggestions(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	candidates := h.resolver.Suggest(c.Request().Context(), session.UserID, c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"suggestions": candidates}})
}
