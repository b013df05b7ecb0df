package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"todoapi/internal/auth"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("success returns projection and token header", func(t *testing.T) {
		svc := new(MockAuthService)
		user := &model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "hashed"}
		svc.On("Register", mock.Anything, "a@b.com", "secret1").Return(user, "signed-token", nil)

		h := NewUserHandler(svc)
		c, rec := newTestContext(t, http.MethodPost, "/users", `{"email":"a@b.com","password":"secret1"}`, nil)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "signed-token", rec.Header().Get(auth.HeaderToken))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, user.ID.String(), body["_id"])
		assert.Equal(t, "a@b.com", body["email"])
		// Password hash and token list must never reach the client.
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "PasswordHash")
		assert.NotContains(t, body, "tokens")
		svc.AssertExpectations(t)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewUserHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"a@b.com","password":"short"}`, nil)

		err := h.Register(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad email format fails validation", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewUserHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"nope","password":"secret1"}`, nil)

		err := h.Register(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "a@b.com", "secret1").Return(nil, "", apperrors.ErrEmailTaken)

		h := NewUserHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"a@b.com","password":"secret1"}`, nil)

		err := h.Register(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAuthService)
		user := &model.User{ID: uuid.New(), Email: "a@b.com"}
		svc.On("Login", mock.Anything, "a@b.com", "secret1").Return(user, "fresh-token", nil)

		h := NewUserHandler(svc)
		c, rec := newTestContext(t, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"secret1"}`, nil)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fresh-token", rec.Header().Get(auth.HeaderToken))
	})

	t.Run("invalid credentials map to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "a@b.com", "secret1").Return(nil, "", apperrors.ErrInvalidCredentials)

		h := NewUserHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"secret1"}`, nil)

		err := h.Login(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestUserHandler_Logout(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "a@b.com"}

	t.Run("removes the request's own token", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Logout", mock.Anything, user.ID, "test-token").Return(nil)

		h := NewUserHandler(svc)
		c, rec := newTestContext(t, http.MethodDelete, "/users/me/token", "", user)

		require.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewUserHandler(svc)
		c, _ := newTestContext(t, http.MethodDelete, "/users/me/token", "", nil)

		err := h.Logout(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestUserHandler_Me(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "hashed"}

	svc := new(MockAuthService)
	h := NewUserHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/users/me", "", user)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, user.ID.String(), body["_id"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotContains(t, body, "password")
}
