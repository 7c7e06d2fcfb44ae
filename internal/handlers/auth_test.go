package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-dev/gatehouse/internal/handlers"
	"github.com/gatehouse-dev/gatehouse/internal/provider"
	"github.com/gatehouse-dev/gatehouse/internal/rendering"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// mockGateway records every call so tests can assert that validation
// gates keep requests away from the provider.
type mockGateway struct {
	signInCalls  int
	signUpCalls  int
	magicCalls   int
	resetCalls   int
	signOutCalls int

	signInErr error
	signUpErr error
	magicErr  error
	resetErr  error

	lastRedirectTo string
}

func (m *mockGateway) SignInWithPassword(ctx context.Context, email, password string) (*provider.Session, error) {
	m.signInCalls++
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return &provider.Session{
		AccessToken: "test-access-token",
		User:        provider.User{ID: "u-1", Email: email},
	}, nil
}

func (m *mockGateway) SignUp(ctx context.Context, email, password, redirectTo string) (*provider.Session, error) {
	m.signUpCalls++
	m.lastRedirectTo = redirectTo
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return &provider.Session{User: provider.User{ID: "u-2", Email: email}}, nil
}

func (m *mockGateway) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	m.magicCalls++
	m.lastRedirectTo = redirectTo
	return m.magicErr
}

func (m *mockGateway) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	m.resetCalls++
	m.lastRedirectTo = redirectTo
	return m.resetErr
}

func (m *mockGateway) SignOut(ctx context.Context, accessToken string) error {
	m.signOutCalls++
	return nil
}

func setupAuthTest() (*echo.Echo, *mockGateway) {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()

	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	e.Use(session.Middleware(cookieStore))

	gateway := &mockGateway{}
	authHandler := handlers.NewAuthHandler(gateway, "http://fallback.example.com")

	e.GET("/auth", authHandler.SignInGet)
	e.GET("/auth/method", authHandler.MethodGet)
	e.GET("/auth/password-form", authHandler.PasswordFormGet)
	e.GET("/auth/forgot", authHandler.ForgotGet)
	e.GET("/auth/logout", authHandler.Logout)
	e.POST("/auth/login", authHandler.LoginPost)
	e.POST("/auth/signup", authHandler.SignupPost)
	e.POST("/auth/forgot", authHandler.ForgotPost)
	e.POST("/auth/magic-link", authHandler.MagicLinkPost)

	return e, gateway
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// assertFlashMessage checks for a specific flash message in the session
// written during the request.
func assertFlashMessage(t *testing.T, req *http.Request, key, expectedMessage string) {
	t.Helper()

	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	sess, _ := cookieStore.Get(req, "flash-session")

	flashes := sess.Flashes(key)
	assert.NotEmpty(t, flashes, "expected flash message but found none for key: %s", key)
	assert.Equal(t, expectedMessage, flashes[0])
}

func TestSignInGet(t *testing.T) {
	e, _ := setupAuthTest()

	t.Run("always starts on the one-time-link method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="magic-link-form"`)
		assert.NotContains(t, rec.Body.String(), `id="password-form"`)
	})

	t.Run("full page carries the attribution footer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), "Authentication powered by")
	})

	t.Run("embedded mode drops the chrome", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth?embedded=1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Authentication powered by")
		assert.NotContains(t, rec.Body.String(), "<html")
	})
}

func TestMethodGet(t *testing.T) {
	e, _ := setupAuthTest()

	t.Run("switching to password yields a fresh password form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/method?method=password", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="password-form"`)
		assert.Contains(t, rec.Body.String(), `value=""`, "fields of a fresh form must be empty")
	})

	t.Run("unknown method falls back to one-time link", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/method?method=bogus", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), `id="magic-link-form"`)
	})
}

func TestPasswordFormGet(t *testing.T) {
	e, _ := setupAuthTest()

	t.Run("mode toggle returns an empty signup form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/password-form?mode=signup", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `name="password_confirm"`)
		assert.Contains(t, body, `value=""`)
		assert.NotContains(t, body, "Forgot your password?", "forgot-password link is login-mode only")
	})

	t.Run("login mode renders the forgot-password link", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/password-form?mode=login", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, "Forgot your password?")
		assert.NotContains(t, body, `name="password_confirm"`)
	})
}

func TestLoginPost(t *testing.T) {
	t.Run("empty fields never reach the provider", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		// no password

		rec := postForm(e, "/auth/login", form)

		assert.Equal(t, 0, gateway.signInCalls, "validation failures must not call the provider")
		assert.Contains(t, rec.Body.String(), "Please enter both your email and password.")
	})

	t.Run("invalid credentials map to the friendly message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.signInErr = &provider.APIError{
			Status:  http.StatusBadRequest,
			Code:    "invalid_credentials",
			Message: "Invalid login credentials",
		}

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")

		rec := postForm(e, "/auth/login", form)

		assert.Equal(t, 1, gateway.signInCalls)
		body := rec.Body.String()
		assert.Contains(t, body, "Invalid email or password. Please try again.")
		// The form stays interactive: submit button re-rendered, email kept.
		assert.Contains(t, body, `type="submit"`)
		assert.Contains(t, body, `value="a@b.com"`)
	})

	t.Run("unconfirmed email maps to its own message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.signInErr = &provider.APIError{Status: 400, Message: "Email not confirmed"}

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")

		rec := postForm(e, "/auth/login", form)
		assert.Contains(t, rec.Body.String(), "confirm your email address")
	})

	t.Run("rate limiting maps to its own message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.signInErr = &provider.APIError{Status: 429, Message: "Request rate limit reached"}

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")

		rec := postForm(e, "/auth/login", form)
		assert.Contains(t, rec.Body.String(), "Too many attempts")
	})

	t.Run("success sets the session cookie and redirects via htmx", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, 1, gateway.signInCalls)
		assert.Equal(t, "/dashboard", rec.Header().Get("HX-Redirect"))

		cookies := rec.Result().Cookies()
		var authCookie *http.Cookie
		for _, c := range cookies {
			if c.Name == "auth_token" {
				authCookie = c
			}
		}
		require.NotNil(t, authCookie, "expected the auth_token cookie to be set")
		assert.Equal(t, "test-access-token", authCookie.Value)
		assert.True(t, authCookie.HttpOnly)

		assertFlashMessage(t, req, "success", "Signed in successfully!")
	})

	t.Run("success without htmx is a plain redirect", func(t *testing.T) {
		e, _ := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")

		rec := postForm(e, "/auth/login", form)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})
}

func TestSignupPost(t *testing.T) {
	t.Run("password of five characters is rejected locally", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "12345")
		form.Set("password_confirm", "12345")

		rec := postForm(e, "/auth/signup", form)

		assert.Equal(t, 0, gateway.signUpCalls)
		assert.Contains(t, rec.Body.String(), "Password must be at least 6 characters long.")
	})

	t.Run("password of six characters passes the local gate", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "123456")
		form.Set("password_confirm", "123456")

		postForm(e, "/auth/signup", form)

		assert.Equal(t, 1, gateway.signUpCalls)
	})

	t.Run("mismatched confirmation is rejected locally", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")
		form.Set("password_confirm", "secret2")

		rec := postForm(e, "/auth/signup", form)

		assert.Equal(t, 0, gateway.signUpCalls)
		assert.Contains(t, rec.Body.String(), "Passwords do not match.")
	})

	t.Run("empty fields are rejected locally", func(t *testing.T) {
		e, gateway := setupAuthTest()

		rec := postForm(e, "/auth/signup", url.Values{})

		assert.Equal(t, 0, gateway.signUpCalls)
		assert.Contains(t, rec.Body.String(), "Please fill in all fields.")
	})

	t.Run("success clears the form and shows the troubleshooting panel", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "new@b.com")
		form.Set("password", "secret1")
		form.Set("password_confirm", "secret1")

		rec := postForm(e, "/auth/signup", form)

		assert.Equal(t, 1, gateway.signUpCalls)
		body := rec.Body.String()
		assert.Contains(t, body, "Check your inbox for a confirmation link")
		assert.NotContains(t, body, "new@b.com", "credential fields must be cleared after signup")
	})

	t.Run("signup passes the request origin as redirect target", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "new@b.com")
		form.Set("password", "secret1")
		form.Set("password_confirm", "secret1")

		postForm(e, "/auth/signup", form)

		assert.Equal(t, "http://example.com/auth", gateway.lastRedirectTo)
	})

	t.Run("already registered maps to the friendly message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.signUpErr = &provider.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "user_already_exists",
			Message: "User already registered",
		}

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")
		form.Set("password_confirm", "secret1")

		rec := postForm(e, "/auth/signup", form)
		assert.Contains(t, rec.Body.String(), "An account with this email already exists.")
	})

	t.Run("disabled signups map to the friendly message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.signUpErr = &provider.APIError{Status: 422, Message: "Signups not allowed for this instance"}

		form := url.Values{}
		form.Set("email", "a@b.com")
		form.Set("password", "secret1")
		form.Set("password_confirm", "secret1")

		rec := postForm(e, "/auth/signup", form)
		assert.Contains(t, rec.Body.String(), "Sign-ups are currently disabled.")
	})
}

func TestForgotPost(t *testing.T) {
	t.Run("address without @ never reaches the provider", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "not-an-email")

		rec := postForm(e, "/auth/forgot", form)

		assert.Equal(t, 0, gateway.resetCalls)
		assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
	})

	t.Run("success shows the sent state", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")

		rec := postForm(e, "/auth/forgot", form)

		assert.Equal(t, 1, gateway.resetCalls)
		body := rec.Body.String()
		assert.Contains(t, body, "Reset link sent!")
		assert.Contains(t, body, "Return to sign in")
	})

	t.Run("provider failure surfaces its message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.resetErr = &provider.APIError{
			Status:  http.StatusTooManyRequests,
			Message: "For security purposes, you can only request this once every 60 seconds",
		}

		form := url.Values{}
		form.Set("email", "a@b.com")

		rec := postForm(e, "/auth/forgot", form)
		assert.Contains(t, rec.Body.String(), "once every 60 seconds")
	})

	t.Run("non-provider failure falls back to the generic message", func(t *testing.T) {
		e, gateway := setupAuthTest()
		gateway.resetErr = context.DeadlineExceeded

		form := url.Values{}
		form.Set("email", "a@b.com")

		rec := postForm(e, "/auth/forgot", form)
		assert.Contains(t, rec.Body.String(), "Could not send the reset email.")
	})
}

func TestMagicLinkPost(t *testing.T) {
	t.Run("address without @ never reaches the provider", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "nope")

		rec := postForm(e, "/auth/magic-link", form)

		assert.Equal(t, 0, gateway.magicCalls)
		assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
	})

	t.Run("success shows the sent state", func(t *testing.T) {
		e, gateway := setupAuthTest()

		form := url.Values{}
		form.Set("email", "a@b.com")

		rec := postForm(e, "/auth/magic-link", form)

		assert.Equal(t, 1, gateway.magicCalls)
		assert.Contains(t, rec.Body.String(), "We sent a sign-in link to a@b.com")
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes the provider session and expires the cookie", func(t *testing.T) {
		e, gateway := setupAuthTest()

		req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "some-token"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, 1, gateway.signOutCalls)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth", rec.Header().Get("Location"))

		var authCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "auth_token" {
				authCookie = c
			}
		}
		require.NotNil(t, authCookie)
		assert.Equal(t, -1, authCookie.MaxAge, "cookie must be expired on logout")
	})

	t.Run("works without a session cookie", func(t *testing.T) {
		e, gateway := setupAuthTest()

		req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, 0, gateway.signOutCalls)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}
