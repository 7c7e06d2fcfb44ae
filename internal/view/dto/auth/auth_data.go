// Package auth holds the view models (DTOs) passed from the auth
// handlers to the sign-in templates.
package auth

// Method identifies the selected authentication method.
type Method string

const (
	// MethodMagicLink is the default on every fresh render of the
	// sign-in page; a previous selection never survives a remount.
	MethodMagicLink Method = "link"
	MethodPassword  Method = "password"
)

// Mode identifies which sub-mode the password form renders.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Alert is an inline notification rendered inside a form fragment.
type Alert struct {
	Success bool
	Message string
}

// SignInData is the view model for the full sign-in page.
type SignInData struct {
	Method   Method
	Embedded bool
}

// PasswordFormData is the view model for the password form fragment.
// Password fields are never carried in the view model; a re-render
// always produces empty credential inputs.
type PasswordFormData struct {
	Mode     Mode
	Email    string
	Embedded bool

	// ShowTroubleshooting renders the post-signup hint panel telling the
	// user to check their inbox for the confirmation email.
	ShowTroubleshooting bool

	Alert *Alert
}

// MagicLinkData is the view model for the one-time-link form fragment.
type MagicLinkData struct {
	Email    string
	Sent     bool
	Embedded bool
	Alert    *Alert
}

// ForgotPasswordData is the view model for the forgot-password panel.
type ForgotPasswordData struct {
	Email    string
	Sent     bool
	Embedded bool
	Alert    *Alert
}
