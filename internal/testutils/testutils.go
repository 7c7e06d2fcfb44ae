package testutils

// TestConfig is a config.Provider for tests. Fields map one-to-one to
// the getters so each test can set only what it cares about.
type TestConfig struct {
	ListenAddr    string
	SessionSecret string
	AuthAPIURL    string
	AuthAPIKey    string
	SiteURL       string
}

func (c *TestConfig) GetListenAddr() string    { return c.ListenAddr }
func (c *TestConfig) GetSessionSecret() string { return c.SessionSecret }
func (c *TestConfig) GetAuthAPIURL() string    { return c.AuthAPIURL }
func (c *TestConfig) GetAuthAPIKey() string    { return c.AuthAPIKey }
func (c *TestConfig) GetSiteURL() string       { return c.SiteURL }

// NewTestConfig returns a TestConfig pointed at the given fake provider
// URL, with sane defaults for everything else.
func NewTestConfig(authAPIURL string) *TestConfig {
	return &TestConfig{
		ListenAddr:    ":0",
		SessionSecret: "a-very-secret-key-for-testing-!",
		AuthAPIURL:    authAPIURL,
		AuthAPIKey:    "test-api-key",
		SiteURL:       "http://localhost:8080",
	}
}
