package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-dev/gatehouse/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()
	requireSession := middleware.RequireSession(s.authClient)

	s.E.GET("/", s.homeHandler.HomeGet)

	// Sign-in UI.
	s.E.GET("/auth", s.authHandler.SignInGet)
	s.E.GET("/auth/method", s.authHandler.MethodGet)
	s.E.GET("/auth/password-form", s.authHandler.PasswordFormGet)
	s.E.GET("/auth/forgot", s.authHandler.ForgotGet)
	s.E.GET("/auth/logout", s.authHandler.Logout)

	// Submissions that reach the auth provider.
	s.E.POST("/auth/login", s.authHandler.LoginPost, rateLimiter)
	s.E.POST("/auth/signup", s.authHandler.SignupPost, rateLimiter)
	s.E.POST("/auth/forgot", s.authHandler.ForgotPost, rateLimiter)
	s.E.POST("/auth/magic-link", s.authHandler.MagicLinkPost, rateLimiter)

	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, requireSession)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
