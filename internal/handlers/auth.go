package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quillpost/backend/internal/auth"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
}

// Login exchanges form credentials for an access token. An unknown email and
// a wrong password produce the same response, so the endpoint cannot be used
// to probe which emails are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.GetUserByEmail(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	if !h.hasher.Verify(req.Password, user.Password) {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid Credentials")
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}
