package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/quillpost/backend/internal/middleware"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
	"gorm.io/gorm"
)

const defaultPostLimit = 10

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts repositories.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("", h.GetPosts)
	g.POST("", h.CreatePost)
	g.GET("/:id", h.GetPost)
	g.PUT("/:id", h.UpdatePost)
	g.DELETE("/:id", h.DeletePost)
}

// GetPosts lists posts with their vote counts, filtered by a title search and
// paged with limit/skip.
func (h *PostHandler) GetPosts(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultPostLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit value")
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skip value")
	}
	search := c.QueryParam("search")

	rows, err := h.posts.ListPostsWithVotes(limit, skip, search)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, rows)
}

// CreatePost creates a post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
		OwnerID:   user.ID,
	}
	if err := h.posts.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post with its vote count
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	row, err := h.posts.GetPostWithVotes(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id: %d was not found", id))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.JSON(http.StatusOK, echo.Map{"post_detail": row})
}

// UpdatePost replaces the fields of a post. Existence is checked before
// ownership, and ownership before the mutation executes.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id: %d does not exist", id))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if post.OwnerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to perform requested action")
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Published = true
	if req.Published != nil {
		post.Published = *req.Published
	}
	if err := h.posts.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id: %d does not exist", id))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if post.OwnerID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to perform requested action")
	}

	if err := h.posts.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
