package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users auth.UserDirectory,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	engagementHandler *handler.EngagementHandler,
	messageHandler *handler.MessageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/projects", projectHandler.ListProjects)
	api.GET("/projects/:id", projectHandler.GetProject)
	api.GET("/projects/:id/comments", engagementHandler.ListComments)

	// Secured routes (require a verified JWT)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Admin-only routes layer the role gate on top of token verification;
	// the gate never runs for an unverified caller.
	adminOnly := auth.RequireRole(users, model.RoleAdmin)

	// User routes
	secured.GET("/users", userHandler.ListUsers, adminOnly)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateProfile)
	secured.DELETE("/users/:id", userHandler.DeleteUser, adminOnly)

	// Project routes
	secured.POST("/projects", projectHandler.CreateProject)
	secured.PUT("/projects/:id", projectHandler.UpdateProject)
	secured.DELETE("/projects/:id", projectHandler.DeleteProject)
	secured.POST("/projects/:id/comments", engagementHandler.AddComment)
	secured.POST("/projects/:id/rating", engagementHandler.SubmitRating)

	// Message routes
	secured.GET("/messages/conversations", messageHandler.ListConversations)
	secured.GET("/messages/:userId", messageHandler.GetThread)
	secured.POST("/messages/:userId", messageHandler.SendMessage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
