// Package provider is a thin HTTP client for the hosted auth service.
// Gatehouse owns no credential verification, token issuance, or email
// delivery; every operation here delegates to the provider's REST API
// (GoTrue-compatible) and reports the outcome.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Auth API endpoint paths, relative to the configured base URL.
const (
	signUpPath        = "/signup"
	passwordGrantPath = "/token?grant_type=password"
	magicLinkPath     = "/otp"
	recoverPath       = "/recover"
	userPath          = "/user"
	signOutPath       = "/logout"
)

// Session is the provider's representation of an authenticated session.
// The access token is the only part Gatehouse holds on to (in a cookie);
// everything else belongs to the provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User is the subset of the provider's user record that the UI displays.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
}

// APIError is a failure reported by the provider. Message is
// human-readable; Code is the provider's stable error code when the
// response carried one, and should be preferred over matching Message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth provider: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("auth provider: %s", e.Message)
}

// Client talks to the hosted auth provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a provider client for the given API base URL and key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SignInWithPassword exchanges an email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, passwordGrantPath, "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignUp creates a new account. The provider sends the confirmation
// email itself; redirectTo is where its confirmation link lands.
func (c *Client) SignUp(ctx context.Context, email, password, redirectTo string) (*Session, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if redirectTo != "" {
		payload["options"] = map[string]string{"email_redirect_to": redirectTo}
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, signUpPath, "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RequestMagicLink asks the provider to email a one-time sign-in link.
func (c *Client) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	payload := map[string]any{
		"email":       email,
		"create_user": true,
	}
	if redirectTo != "" {
		payload["options"] = map[string]string{"email_redirect_to": redirectTo}
	}
	return c.do(ctx, http.MethodPost, magicLinkPath, "", payload, nil)
}

// ResetPasswordForEmail asks the provider to email a password reset
// link. The provider decides whether the account exists; this call
// succeeds either way to avoid leaking registered addresses.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	payload := map[string]string{"email": email}
	if redirectTo != "" {
		payload["redirect_to"] = redirectTo
	}
	return c.do(ctx, http.MethodPost, recoverPath, "", payload, nil)
}

// User fetches the user that owns accessToken. A failure means the
// token is no longer valid.
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, userPath, accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session behind accessToken on the provider side.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, signOutPath, accessToken, nil, nil)
}

// do performs one request against the provider and decodes the response
// into out (when non-nil). Failures are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path, accessToken string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal auth request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	// Correlation ID so a failed call can be matched with provider logs.
	req.Header.Set("X-Request-ID", uuid.NewString())
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach auth provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return nil
}

// errorBody covers the two error shapes the provider emits: the newer
// {"code":..,"error_code":"..","msg":".."} and the older OAuth-style
// {"error":"..","error_description":".."}.
type errorBody struct {
	Code             string `json:"error_code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		apiErr.Message = resp.Status
		return apiErr
	}

	apiErr.Code = body.Code
	switch {
	case body.Msg != "":
		apiErr.Message = body.Msg
	case body.ErrorDescription != "":
		apiErr.Message = body.ErrorDescription
	case body.Error != "":
		apiErr.Message = body.Error
	default:
		apiErr.Message = resp.Status
	}
	return apiErr
}
