package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todoapi/internal/auth"
	"todoapi/internal/handler"
	"todoapi/internal/repository"
)

// Register wires routes and middleware. Routes live at the root, matching the
// service's original paths.
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	users repository.UserRepository,
	userHandler *handler.UserHandler,
	todoHandler *handler.TodoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", userHandler.Register)
	e.POST("/users/login", userHandler.Login)

	// Protected routes: signature check, then token-list revocation check.
	authChain := auth.Middleware(tokens, users)

	me := e.Group("/users/me", authChain...)
	me.GET("", userHandler.Me)
	me.DELETE("/token", userHandler.Logout)

	todos := e.Group("/todos", authChain...)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.DELETE("/:id", todoHandler.Delete)
	todos.PATCH("/:id", todoHandler.Update)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
