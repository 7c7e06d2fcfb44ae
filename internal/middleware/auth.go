package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-dev/gatehouse/internal/provider"
)

// UserContextKey is where RequireSession stores the provider's user
// record for downstream handlers.
const UserContextKey = "user"

// SessionValidator checks whether an access token still belongs to a
// live session. The concrete implementation is provider.Client; no
// token validation happens locally.
type SessionValidator interface {
	User(ctx context.Context, accessToken string) (*provider.User, error)
}

// RequireSession protects routes that need a signed-in user. The token
// from the cookie is forwarded to the auth provider for validation; a
// rejected or missing token redirects to the sign-in page.
func RequireSession(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie("auth_token")
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/auth")
			}

			user, err := validator.User(c.Request().Context(), cookie.Value)
			if err != nil {
				// The provider no longer recognizes the token; clear the
				// stale cookie before redirecting.
				c.SetCookie(&http.Cookie{
					Name:   "auth_token",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
				return c.Redirect(http.StatusSeeOther, "/auth")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
