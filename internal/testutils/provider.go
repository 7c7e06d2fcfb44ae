package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// FakeAuthProvider is an in-memory stand-in for the hosted auth
// service, speaking just enough of its REST API for integration tests.
type FakeAuthProvider struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[string]string // email -> password
	sessions map[string]string // access token -> email

	// RecoverRequests counts accepted reset-link requests.
	RecoverRequests int
	// MagicLinkRequests counts accepted one-time-link requests.
	MagicLinkRequests int
}

// NewFakeAuthProvider starts a fake provider with the given
// pre-registered users (email -> password). It shuts down with the test.
func NewFakeAuthProvider(t *testing.T, users map[string]string) *FakeAuthProvider {
	t.Helper()

	f := &FakeAuthProvider{
		users:    map[string]string{},
		sessions: map[string]string{},
	}
	for email, password := range users {
		f.users[email] = password
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", f.handleToken)
	mux.HandleFunc("POST /signup", f.handleSignup)
	mux.HandleFunc("POST /recover", f.handleRecover)
	mux.HandleFunc("POST /otp", f.handleOTP)
	mux.HandleFunc("GET /user", f.handleUser)
	mux.HandleFunc("POST /logout", f.handleLogout)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the fake provider's base URL.
func (f *FakeAuthProvider) URL() string {
	return f.Server.URL
}

// SessionCount reports how many sessions are currently live.
func (f *FakeAuthProvider) SessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *FakeAuthProvider) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grant_type") != "password" {
		writeError(w, http.StatusBadRequest, "unsupported_grant", "Unsupported grant type")
		return
	}

	var creds credentials
	_ = json.NewDecoder(r.Body).Decode(&creds)

	f.mu.Lock()
	defer f.mu.Unlock()

	password, ok := f.users[creds.Email]
	if !ok || password != creds.Password {
		writeError(w, http.StatusBadRequest, "invalid_credentials", "Invalid login credentials")
		return
	}

	token := uuid.NewString()
	f.sessions[token] = creds.Email
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": uuid.NewString(),
		"user":          map[string]string{"id": uuid.NewString(), "email": creds.Email},
	})
}

func (f *FakeAuthProvider) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	_ = json.NewDecoder(r.Body).Decode(&creds)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[creds.Email]; exists {
		writeError(w, http.StatusUnprocessableEntity, "user_already_exists", "User already registered")
		return
	}
	if len(creds.Password) < 6 {
		writeError(w, http.StatusUnprocessableEntity, "weak_password", "Password should be at least 6 characters")
		return
	}

	f.users[creds.Email] = creds.Password
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{"id": uuid.NewString(), "email": creds.Email},
	})
}

func (f *FakeAuthProvider) handleRecover(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.RecoverRequests++
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *FakeAuthProvider) handleOTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.MagicLinkRequests++
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (f *FakeAuthProvider) handleUser(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	f.mu.Lock()
	email, ok := f.sessions[token]
	f.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "session_not_found", "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": token, "email": email})
}

func (f *FakeAuthProvider) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	f.mu.Lock()
	delete(f.sessions, token)
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"code":       status,
		"error_code": code,
		"msg":        msg,
	})
}
