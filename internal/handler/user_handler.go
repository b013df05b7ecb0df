package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/auth"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/service"
)

// UserHandler handles registration, login, logout and who-am-i endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// CredentialsRequest carries an email/password pair. Binding to this struct
// drops any extra fields a client sends.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,min=5"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} model.User
// @Header 200 {string} x-auth "session token"
// @Failure 400 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(auth.HeaderToken, token)
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login an existing user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} model.User
// @Header 200 {string} x-auth "session token"
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(auth.HeaderToken, token)
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Revoke the session token used for this request
// @Tags users
// @Produce json
// @Success 200
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/token [delete]
func (h *UserHandler) Logout(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	token, ok := auth.CurrentToken(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID, token); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusOK)
}

// Me godoc
// @Summary Return the authenticated user's public projection
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, user)
}
