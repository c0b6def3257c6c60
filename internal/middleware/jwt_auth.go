package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/quillpost/backend/internal/auth"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
)

const userContextKey = "currentUser"

// JWTAuth resolves the bearer token of each request to a persisted user.
type JWTAuth struct {
	tokens *auth.TokenService
	users  repositories.UserRepository
}

// NewJWTAuth creates a new JWTAuth middleware
func NewJWTAuth(tokens *auth.TokenService, users repositories.UserRepository) *JWTAuth {
	return &JWTAuth{tokens: tokens, users: users}
}

// Middleware extracts the bearer token, verifies it, loads the user it names
// and attaches the record to the request context. Every defect maps to the
// same 401 so the response never reveals why a credential was rejected.
func (m *JWTAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return errUnauthorized()
			}

			// Expecting "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return errUnauthorized()
			}

			userID, err := m.tokens.Verify(parts[1])
			if err != nil {
				c.Logger().Debugf("token rejected: %v", err)
				return errUnauthorized()
			}

			user, err := m.users.GetUserByID(userID)
			if err != nil {
				c.Logger().Debugf("token subject %d could not be resolved: %v", userID, err)
				return errUnauthorized()
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Middleware for this request.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok
}

func errUnauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}
