package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-dev/gatehouse/internal/middleware"
	"github.com/gatehouse-dev/gatehouse/internal/provider"
	"github.com/gatehouse-dev/gatehouse/internal/view"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/layouts"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/pages"
)

// DashboardHandler handles requests for the signed-in landing page.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardGet shows the signed-in landing page. The RequireSession
// middleware has already validated the token with the provider and
// placed the user in the context.
func (h *DashboardHandler) DashboardGet(c echo.Context) error {
	user := c.Get(middleware.UserContextKey).(*provider.User)

	flashes := view.GetFlashData(c)
	return c.Render(http.StatusOK, "", layouts.Base("Dashboard", flashes, pages.Dashboard(user)))
}
