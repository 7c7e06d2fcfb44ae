package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Provider exposes application configuration behind an interface so that
// handlers and tests can depend on it without touching the environment.
type Provider interface {
	GetListenAddr() string
	GetSessionSecret() string
	GetAuthAPIURL() string
	GetAuthAPIKey() string
	GetSiteURL() string
}

// Config holds all configuration for the application.
type Config struct {
	ListenAddr    string
	SessionSecret string

	// AuthAPIURL is the base URL of the hosted auth provider's REST API,
	// e.g. https://project.example.co/auth/v1.
	AuthAPIURL string
	AuthAPIKey string

	// SiteURL is the fallback origin used for email redirect targets when
	// the incoming request carries no usable host.
	SiteURL string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AuthAPIURL:    os.Getenv("AUTH_API_URL"),
		AuthAPIKey:    os.Getenv("AUTH_API_KEY"),
		SiteURL:       os.Getenv("SITE_URL"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if cfg.AuthAPIURL == "" || cfg.AuthAPIKey == "" || cfg.SessionSecret == "" {
		log.Fatal("Required environment variables AUTH_API_URL, AUTH_API_KEY, or SESSION_SECRET are not set.")
	}

	return cfg
}

func (c *Config) GetListenAddr() string    { return c.ListenAddr }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetAuthAPIURL() string    { return c.AuthAPIURL }
func (c *Config) GetAuthAPIKey() string    { return c.AuthAPIKey }
func (c *Config) GetSiteURL() string       { return c.SiteURL }
