package provider

import (
	"errors"
	"strings"
)

// Kind buckets provider failures into the cases the UI knows how to
// explain to the user. Anything unrecognized is KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindEmailUnconfirmed
	KindRateLimited
	KindAlreadyRegistered
	KindWeakPassword
	KindSignupDisabled
)

// codeKinds maps the provider's stable error codes to kinds. Preferred
// over message matching whenever the response carried a code.
var codeKinds = map[string]Kind{
	"invalid_credentials":        KindInvalidCredentials,
	"email_not_confirmed":        KindEmailUnconfirmed,
	"over_request_rate_limit":    KindRateLimited,
	"over_email_send_rate_limit": KindRateLimited,
	"user_already_exists":        KindAlreadyRegistered,
	"email_exists":               KindAlreadyRegistered,
	"weak_password":              KindWeakPassword,
	"signup_disabled":            KindSignupDisabled,
}

// messageKinds is the substring fallback for providers (or provider
// versions) that only return a human-readable message. Order matters:
// the first match wins.
var messageKinds = []struct {
	substr string
	kind   Kind
}{
	{"invalid login credentials", KindInvalidCredentials},
	{"invalid email or password", KindInvalidCredentials},
	{"email not confirmed", KindEmailUnconfirmed},
	{"rate limit", KindRateLimited},
	{"too many requests", KindRateLimited},
	{"already registered", KindAlreadyRegistered},
	{"already exists", KindAlreadyRegistered},
	{"password should be at least", KindWeakPassword},
	{"signups not allowed", KindSignupDisabled},
	{"signup is disabled", KindSignupDisabled},
}

// Classify determines which failure case err represents. It prefers the
// provider's error code and falls back to matching the message text,
// which is the fragile part of the provider contract and therefore kept
// in one place.
func Classify(err error) Kind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	if kind, ok := codeKinds[apiErr.Code]; ok {
		return kind
	}

	msg := strings.ToLower(apiErr.Message)
	for _, rule := range messageKinds {
		if strings.Contains(msg, rule.substr) {
			return rule.kind
		}
	}
	return KindUnknown
}
