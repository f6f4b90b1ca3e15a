package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/fundspace/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// OrganizationHandler handles organization directory HTTP requests
type OrganizationHandler struct {
	orgRepository repositories.OrganizationRepository
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgRepo repositories.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{orgRepository: orgRepo}
}

// RegisterOrganizationRoutes registers organization routes
func (h *OrganizationHandler) RegisterOrganizationRoutes(g *echo.Group) {
	g.GET("/organizations", h.GetOrganizations)
	g.GET("/organizations/search", h.SearchOrganizations)
	g.GET("/organizations/:slug", h.GetOrganization)
}

// GetOrganizations returns the paginated organization directory, optionally
// filtered by type
func (h *OrganizationHandler) GetOrganizations(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 24
	}

	orgs, total, err := h.orgRepository.GetOrganizations(c.Request().Context(), c.QueryParam("type"), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"organizations": orgs},
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetOrganization retrieves an organization by slug
func (h *OrganizationHandler) GetOrganization(c echo.Context) error {
	org, err := h.orgRepository.GetOrganizationBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Organization not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, org)
}

// SearchOrganizations searches organizations by name
func (h *OrganizationHandler) SearchOrganizations(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	orgs, err := h.orgRepository.SearchByName(c.Request().Context(), query, listLimit(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"organizations": orgs}})
}
