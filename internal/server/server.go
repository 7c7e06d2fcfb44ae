package server

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gatehouse-dev/gatehouse/internal/config"
	"github.com/gatehouse-dev/gatehouse/internal/handlers"
	"github.com/gatehouse-dev/gatehouse/internal/logging"
	"github.com/gatehouse-dev/gatehouse/internal/middleware"
	"github.com/gatehouse-dev/gatehouse/internal/provider"
	"github.com/gatehouse-dev/gatehouse/internal/rendering"
	"github.com/gatehouse-dev/gatehouse/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	authClient       *provider.Client
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New creates a new Server instance wired to the hosted auth provider.
func New() *Server {
	logging.New()
	cfg := config.New()
	return NewWithConfig(cfg)
}

// NewWithConfig assembles the server from an existing configuration.
// Split out from New so tests can inject their own config.
func NewWithConfig(cfg config.Provider) *Server {
	authClient := provider.New(cfg.GetAuthAPIURL(), cfg.GetAuthAPIKey())

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	// Session middleware backs the flash-message notifications.
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	// Serve embedded static assets (htmx helpers, stylesheet).
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:                e,
		Cfg:              cfg,
		authClient:       authClient,
		homeHandler:      handlers.NewHomeHandler(),
		authHandler:      handlers.NewAuthHandler(authClient, cfg.GetSiteURL()),
		dashboardHandler: handlers.NewDashboardHandler(),
	}
}

// AuthClient is a getter for the server's provider client, useful for testing.
func (s *Server) AuthClient() *provider.Client {
	return s.authClient
}
