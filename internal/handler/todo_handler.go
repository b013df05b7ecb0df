package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/auth"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/service"
)

// TodoHandler handles the owner-scoped todo endpoints. All routes sit behind
// the auth middleware, so a missing user on the context is a 401.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTodoRequest represents a partial todo update. Only text and completed
// are editable; anything else in the body is dropped at bind time.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoResponse wraps a single todo.
type TodoResponse struct {
	Todo *model.Todo `json:"todo"`
}

// TodosResponse wraps the owner's todo list.
type TodosResponse struct {
	Todos []model.Todo `json:"todos"`
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo data"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.Create(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		return todoError(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// List godoc
// @Summary List the requester's todos
// @Tags todos
// @Produce json
// @Success 200 {object} TodosResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	todos, err := h.todoService.List(c.Request().Context(), user.ID)
	if err != nil {
		return todoError(err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return c.JSON(http.StatusOK, TodosResponse{Todos: todos})
}

// Get godoc
// @Summary Fetch one todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ReasonResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	todo, err := h.todoService.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return todoError(err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Delete godoc
// @Summary Remove one todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ReasonResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	todo, err := h.todoService.Delete(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return todoError(err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Update godoc
// @Summary Partially update one todo by id
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Editable fields"
// @Success 200 {object} TodoResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ReasonResponse
// @Router /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	// Only text and completed are picked from the body; anything else,
	// including mistyped values, is ignored rather than rejected. A
	// non-boolean completed counts as absent and clears the timestamp.
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	var text *string
	if v, ok := body["text"].(string); ok {
		text = &v
	}
	var completed *bool
	if v, ok := body["completed"].(bool); ok {
		completed = &v
	}

	todo, err := h.todoService.Update(c.Request().Context(), user.ID, c.Param("id"), text, completed)
	if err != nil {
		return todoError(err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// todoError maps service errors onto the todo routes' wire contract: misses
// and malformed ids share a 404 with a short reason payload, everything else
// goes through the standard mapping.
func todoError(err error) *echo.HTTPError {
	if errors.Is(err, apperrors.ErrTodoNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ReasonResponse{Reason: err.Error()})
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
