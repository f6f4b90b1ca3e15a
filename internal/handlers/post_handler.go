package handlers

import (
	"net/http"
	"strconv"

	"github.com/fundspace/backend/internal/models"
	"github.com/fundspace/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles community post HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByAuthor)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post. Mentions selected in the editor arrive as
// embedded {id, label, type} snapshots and are stored as-is.
func (h *PostHandler) CreatePost(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID: session.UserID.String(),
		Content:  req.Content,
		Mentions: req.Mentions,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts retrieves all posts with pagination
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, limit := pagination(c)
	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetPostsByAuthor retrieves posts authored by the member in the path
func (h *PostHandler) GetPostsByAuthor(c echo.Context) error {
	authorID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	skip, limit := pagination(c)
	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), authorID.String(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// DeletePost deletes a post authored by the viewer (admins may delete any
// post)
func (h *PostHandler) DeletePost(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if post.AuthorID != session.UserID.String() && !session.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func pagination(c echo.Context) (skip, limit int64) {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return (page - 1) * limit, limit
}
