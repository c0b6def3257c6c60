package router

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/quillpost/backend/internal/auth"
	"github.com/quillpost/backend/internal/handlers"
	"github.com/quillpost/backend/internal/middleware"
	"github.com/quillpost/backend/internal/models"
	"github.com/quillpost/backend/internal/repositories"
	"github.com/quillpost/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// HTTPErrorHandler renders every error as {"detail": message} and attaches
// the bearer challenge to 401 responses. Internal detail is logged, never
// sent to the client.
func HTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	detail := "Internal Server Error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		} else {
			detail = fmt.Sprintf("%v", he.Message)
		}
	} else {
		c.Logger().Error(err)
	}

	if c.Response().Committed {
		return
	}
	if code == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			c.Logger().Error(err)
		}
		return
	}
	if err := c.JSON(code, echo.Map{"detail": detail}); err != nil {
		c.Logger().Error(err)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Vote{},
	); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}

	e.HTTPErrorHandler = HTTPErrorHandler

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Hello World"})
	})

	// --- Core services ---
	hasher := auth.NewDefaultPasswordHasher()
	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	voteRepo := repositories.NewPostgresVoteRepository(db)

	// --- Unprotected routes ---
	authHandler := handlers.NewAuthHandler(userRepo, hasher, tokens)
	authHandler.RegisterAuthRoutes(e)

	userHandler := handlers.NewUserHandler(userRepo, hasher)
	userHandler.RegisterUserRoutes(e.Group("/users"))

	// --- Protected routes (require a bearer token) ---
	jwtAuth := middleware.NewJWTAuth(tokens, userRepo)

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(e.Group("/posts", jwtAuth.Middleware()))

	voteHandler := handlers.NewVoteHandler(voteRepo, postRepo)
	voteHandler.RegisterVoteRoutes(e.Group("/vote", jwtAuth.Middleware()))

	log.Println("All routes configured.")
	return nil
}
