package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler handles requests for the root path.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends visitors to the right place: the dashboard when a
// session cookie is present, the sign-in page otherwise. The dashboard
// middleware does the actual token validation.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	cookie, err := c.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/auth")
}
