package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// HeaderToken is the request header carrying the session token.
const HeaderToken = "x-auth"

// Echo context keys set by the middleware chain.
const (
	contextKeyToken = "auth_token"
	contextKeyUser  = "auth_user"
)

// Middleware returns the authentication chain for protected routes. The first
// stage verifies the x-auth header signature without touching the database;
// the second resolves the user whose token list still contains this exact
// token, so a verified-but-revoked token is rejected with 401 all the same.
func Middleware(tokens *TokenService, users repository.UserRepository) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:  tokens.secret,
		TokenLookup: "header:" + HeaderToken,
		ContextKey:  contextKeyToken,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		},
	})

	return []echo.MiddlewareFunc{verify, resolveUser(tokens, users)}
}

func resolveUser(tokens *TokenService, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderToken)

			// Re-verify through the token service so the access tag and the
			// user id format are checked, not just the signature.
			claims, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			user, err := users.FindByToken(c.Request().Context(), userID, raw)
			if err != nil {
				// Revoked or never issued; the signature alone proves nothing.
				return echo.NewHTTPError(http.StatusUnauthorized)
			}

			SetCurrentUser(c, user)
			SetCurrentToken(c, raw)
			return next(c)
		}
	}
}

// SetCurrentUser attaches the resolved user to the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(contextKeyUser, user)
}

// SetCurrentToken attaches the raw token string to the request context.
func SetCurrentToken(c echo.Context, token string) {
	c.Set(contextKeyToken, token)
}

// CurrentUser returns the authenticated user attached by the middleware.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(contextKeyUser).(*model.User)
	return user, ok
}

// CurrentToken returns the raw token string used for this request.
func CurrentToken(c echo.Context) (string, bool) {
	token, ok := c.Get(contextKeyToken).(string)
	return token, ok
}
