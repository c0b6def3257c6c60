package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quillpost/backend/internal/middleware"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
	"gorm.io/gorm"
)

// VoteHandler handles HTTP requests related to votes
type VoteHandler struct {
	votes repositories.VoteRepository
	posts repositories.PostRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(votes repositories.VoteRepository, posts repositories.PostRepository) *VoteHandler {
	return &VoteHandler{votes: votes, posts: posts}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.POST("", h.Vote)
}

// Vote adds or removes the caller's vote on a post. Dir 1 adds, anything at
// or below zero removes. Each pair holds at most one vote.
func (h *VoteHandler) Vote(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	var req models.CreateVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.posts.GetPostByID(req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("post with id: %d not found", req.PostID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	if req.Dir == 1 {
		voted, err := h.votes.HasVoted(req.PostID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		if voted {
			return alreadyVoted(user.ID, req.PostID)
		}
		if err := h.votes.AddVote(req.PostID, user.ID); err != nil {
			// A concurrent request may have inserted between the check and
			// the insert; the primary key reports it either way.
			if errors.Is(err, repositories.ErrDuplicateVote) {
				return alreadyVoted(user.ID, req.PostID)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "successfully added vote"})
	}

	if err := h.votes.RemoveVote(req.PostID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrVoteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "vote does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "successfully deleted vote"})
}

func alreadyVoted(userID, postID uint) error {
	return echo.NewHTTPError(http.StatusConflict,
		fmt.Sprintf("user %d has already voted on post %d", userID, postID))
}
