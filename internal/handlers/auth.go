package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/gatehouse-dev/gatehouse/internal/provider"
	"github.com/gatehouse-dev/gatehouse/internal/view"
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/layouts"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/pages"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/partials"
)

// AuthGateway is the slice of the hosted auth provider that the sign-in
// UI needs. The concrete implementation is provider.Client.
type AuthGateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*provider.Session, error)
	SignUp(ctx context.Context, email, password, redirectTo string) (*provider.Session, error)
	RequestMagicLink(ctx context.Context, email, redirectTo string) error
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context, accessToken string) error
}

// AuthHandler renders the sign-in UI and forwards submissions to the
// hosted auth provider. It owns no authentication logic of its own.
type AuthHandler struct {
	gateway AuthGateway
	siteURL string
}

// NewAuthHandler creates a new AuthHandler. siteURL is the fallback
// origin for email redirect targets when a request has no usable host.
func NewAuthHandler(gateway AuthGateway, siteURL string) *AuthHandler {
	return &AuthHandler{
		gateway: gateway,
		siteURL: siteURL,
	}
}

// SignInGet renders the sign-in page (GET /auth). The method selector
// always starts on the one-time-link method: a fresh render never
// inherits a previous visit's choice.
func (h *AuthHandler) SignInGet(c echo.Context) error {
	data := dto.SignInData{
		Method:   dto.MethodMagicLink,
		Embedded: isEmbedded(c),
	}

	page := pages.SignIn(data)
	if data.Embedded {
		// Embedded mode renders the bare card, no page shell or footer.
		return c.Render(http.StatusOK, "", page)
	}

	flashes := view.GetFlashData(c)
	return c.Render(http.StatusOK, "", layouts.Base("Sign in", flashes, page))
}

// MethodGet swaps the auth panel to the requested method (htmx
// fragment). The sub-form comes back freshly built, so switching
// methods discards any in-progress form state.
func (h *AuthHandler) MethodGet(c echo.Context) error {
	method := dto.MethodMagicLink
	if c.QueryParam("method") == string(dto.MethodPassword) {
		method = dto.MethodPassword
	}

	return c.Render(http.StatusOK, "", pages.AuthPanel(dto.SignInData{
		Method:   method,
		Embedded: isEmbedded(c),
	}))
}

// PasswordFormGet returns a fresh password form fragment in the
// requested mode. This is the mode-toggle target: the swap clears all
// fields, closes the forgot-password panel, and drops the
// troubleshooting hint, because none of that state is carried over.
func (h *AuthHandler) PasswordFormGet(c echo.Context) error {
	mode := dto.ModeLogin
	if c.QueryParam("mode") == string(dto.ModeSignup) {
		mode = dto.ModeSignup
	}

	return c.Render(http.StatusOK, "", partials.PasswordForm(dto.PasswordFormData{
		Mode:     mode,
		Embedded: isEmbedded(c),
	}))
}

// LoginPost handles the login form submission.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeLogin,
			Alert: errAlert("Please enter both your email and password."),
		})
	}

	// Validation gate: empty fields never reach the provider.
	if err := c.Validate(req); err != nil {
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeLogin,
			Email: req.Email,
			Alert: errAlert("Please enter both your email and password."),
		})
	}

	session, err := h.gateway.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// The failure is logged for diagnostics and resolved into exactly
		// one notification; it never propagates past this handler.
		slog.Warn("Failed login attempt", "email", req.Email, "error", err)
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeLogin,
			Email: req.Email,
			Alert: errAlert(loginFailureMessage(provider.Classify(err))),
		})
	}

	setAuthCookie(c, session.AccessToken)
	view.SetFlashSuccess(c, "Signed in successfully!")
	return redirectAfterAuth(c, "/dashboard")
}

// SignupPost handles the registration form submission.
func (h *AuthHandler) SignupPost(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeSignup,
			Alert: errAlert("Please fill in all fields."),
		})
	}

	// Validation gate: empty fields, a short password, or a confirm
	// mismatch are rejected here with a specific message, with no
	// provider call made.
	if err := c.Validate(req); err != nil {
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeSignup,
			Email: req.Email,
			Alert: errAlert(signupValidationMessage(err)),
		})
	}

	_, err := h.gateway.SignUp(c.Request().Context(), req.Email, req.Password, h.redirectTarget(c))
	if err != nil {
		slog.Warn("Failed signup attempt", "email", req.Email, "error", err)
		return h.renderPasswordForm(c, dto.PasswordFormData{
			Mode:  dto.ModeSignup,
			Email: req.Email,
			Alert: errAlert(signupFailureMessage(provider.Classify(err))),
		})
	}

	// Success: the form comes back cleared, with the troubleshooting
	// panel telling the user to confirm their email.
	return h.renderPasswordForm(c, dto.PasswordFormData{
		Mode:                dto.ModeSignup,
		ShowTroubleshooting: true,
		Alert:               okAlert("Account created! Check your email to confirm your address."),
	})
}

// ForgotGet opens the forgot-password panel (htmx fragment).
func (h *AuthHandler) ForgotGet(c echo.Context) error {
	return c.Render(http.StatusOK, "", partials.ForgotPassword(dto.ForgotPasswordData{
		Embedded: isEmbedded(c),
	}))
}

// ForgotPost handles the reset-link request.
func (h *AuthHandler) ForgotPost(c echo.Context) error {
	req := new(EmailRequest)
	_ = c.Bind(req)

	// Email-shape gate: an address without "@" never reaches the provider.
	if err := c.Validate(req); err != nil {
		return c.Render(http.StatusOK, "", partials.ForgotPassword(dto.ForgotPasswordData{
			Email:    req.Email,
			Embedded: isEmbedded(c),
			Alert:    errAlert("Please enter a valid email address."),
		}))
	}

	if err := h.gateway.ResetPasswordForEmail(c.Request().Context(), req.Email, h.redirectTarget(c)); err != nil {
		slog.Warn("Failed reset-link request", "email", req.Email, "error", err)
		return c.Render(http.StatusOK, "", partials.ForgotPassword(dto.ForgotPasswordData{
			Email:    req.Email,
			Embedded: isEmbedded(c),
			Alert:    errAlert(providerMessage(err, "Could not send the reset email. Please try again later.")),
		}))
	}

	return c.Render(http.StatusOK, "", partials.ForgotPassword(dto.ForgotPasswordData{
		Email:    req.Email,
		Sent:     true,
		Embedded: isEmbedded(c),
		Alert:    okAlert("Reset link sent! Check your inbox."),
	}))
}

// MagicLinkPost handles the one-time-link request.
func (h *AuthHandler) MagicLinkPost(c echo.Context) error {
	req := new(EmailRequest)
	_ = c.Bind(req)

	if err := c.Validate(req); err != nil {
		return c.Render(http.StatusOK, "", partials.MagicLinkForm(dto.MagicLinkData{
			Email:    req.Email,
			Embedded: isEmbedded(c),
			Alert:    errAlert("Please enter a valid email address."),
		}))
	}

	if err := h.gateway.RequestMagicLink(c.Request().Context(), req.Email, h.redirectTarget(c)); err != nil {
		slog.Warn("Failed magic-link request", "email", req.Email, "error", err)
		return c.Render(http.StatusOK, "", partials.MagicLinkForm(dto.MagicLinkData{
			Email:    req.Email,
			Embedded: isEmbedded(c),
			Alert:    errAlert(providerMessage(err, "Could not send the sign-in link. Please try again later.")),
		}))
	}

	return c.Render(http.StatusOK, "", partials.MagicLinkForm(dto.MagicLinkData{
		Email:    req.Email,
		Sent:     true,
		Embedded: isEmbedded(c),
	}))
}

// Logout revokes the session with the provider (best effort) and clears
// the cookie. The next render of the sign-in page starts from scratch.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie.Value != "" {
		if err := h.gateway.SignOut(c.Request().Context(), cookie.Value); err != nil {
			// The local session is gone either way.
			slog.Warn("Provider sign-out failed", "error", err)
		}
	}

	setAuthCookie(c, "")
	view.SetFlashSuccess(c, "You have been signed out.")
	return c.Redirect(http.StatusSeeOther, "/auth")
}

// renderPasswordForm re-renders the password form fragment, keeping the
// submitted email but never the passwords.
func (h *AuthHandler) renderPasswordForm(c echo.Context, data dto.PasswordFormData) error {
	data.Embedded = isEmbedded(c)
	return c.Render(http.StatusOK, "", partials.PasswordForm(data))
}

// redirectTarget computes where the provider's confirmation and reset
// emails should land: the origin of the live request, falling back to
// the configured site URL when there is none.
func (h *AuthHandler) redirectTarget(c echo.Context) string {
	host := c.Request().Host
	if host == "" {
		return h.siteURL
	}
	return c.Scheme() + "://" + host + "/auth"
}

// loginFailureMessage maps a classified sign-in failure to its
// user-facing notification.
func loginFailureMessage(kind provider.Kind) string {
	switch kind {
	case provider.KindInvalidCredentials:
		return "Invalid email or password. Please try again."
	case provider.KindEmailUnconfirmed:
		return "Please confirm your email address before signing in. Check your inbox for the confirmation link."
	case provider.KindRateLimited:
		return "Too many attempts. Please wait a moment and try again."
	default:
		return "Could not sign you in. Please try again later."
	}
}

// signupFailureMessage maps a classified sign-up failure to its
// user-facing notification.
func signupFailureMessage(kind provider.Kind) string {
	switch kind {
	case provider.KindAlreadyRegistered:
		return "An account with this email already exists. Try signing in instead."
	case provider.KindWeakPassword:
		return "Password must be at least 6 characters long."
	case provider.KindSignupDisabled:
		return "Sign-ups are currently disabled."
	case provider.KindRateLimited:
		return "Too many attempts. Please wait a moment and try again."
	default:
		return "Could not create your account. Please try again later."
	}
}

// signupValidationMessage picks the message for the first failed rule,
// in the order the form is checked: presence, length, confirmation.
func signupValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Please fill in all fields."
	}

	fe := fieldErrs[0]
	switch {
	case fe.Tag() == "required":
		return "Please fill in all fields."
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "Password must be at least 6 characters long."
	case fe.Field() == "PasswordConfirm":
		return "Passwords do not match."
	default:
		return "Please fill in all fields."
	}
}

// providerMessage surfaces the provider's own message when there is
// one, otherwise the given fallback.
func providerMessage(err error, fallback string) string {
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func errAlert(message string) *dto.Alert {
	return &dto.Alert{Message: message}
}

func okAlert(message string) *dto.Alert {
	return &dto.Alert{Success: true, Message: message}
}

// isEmbedded reports whether the request asked for the embedded
// (chrome-less) rendition. Purely presentational; the flow is the same.
func isEmbedded(c echo.Context) bool {
	return c.QueryParam("embedded") == "1"
}

// redirectAfterAuth redirects to target, using HX-Redirect for htmx
// requests so the browser performs a full navigation.
func redirectAfterAuth(c echo.Context, target string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// setAuthCookie is a helper function to create and set the session cookie
// holding the provider's access token.
func setAuthCookie(c echo.Context, token string) {
	cookie := new(http.Cookie)
	cookie.Name = "auth_token"
	cookie.Value = token
	cookie.Path = "/"
	if token == "" {
		// Logging out: expire the cookie immediately.
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().UTC().Add(24 * time.Hour)
	}
	// HttpOnly keeps client-side scripts away from the token.
	cookie.HttpOnly = true
	cookie.Secure = c.Request().TLS != nil
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
