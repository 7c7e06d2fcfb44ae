package partials

import (
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// PasswordForm renders the email/password form in either login or
// signup mode. Every render produces empty credential inputs; only the
// email may be pre-filled. The submit button is disabled while an htmx
// request is in flight, so no concurrent submissions are possible.
func PasswordForm(data dto.PasswordFormData) cmp.Node {
	login := data.Mode == dto.ModeLogin

	action := "/auth/signup"
	submitLabel := "Create account"
	if login {
		action = "/auth/login"
		submitLabel = "Sign in"
	}

	return g.Form(
		g.ID("password-form"),
		hx.Post(withEmbedded(action, data.Embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Class("space-y-4"),

		Alert(data.Alert),
		cmp.If(data.ShowTroubleshooting, troubleshootingPanel()),

		g.Div(
			g.Label(g.For("email"), g.Class("block text-sm font-medium mb-1"), cmp.Text("Email")),
			g.Input(
				g.Type("email"),
				g.ID("email"),
				g.Name("email"),
				g.Value(data.Email),
				g.AutoComplete("email"),
				g.Placeholder("you@example.com"),
				g.Class("w-full border rounded-md px-3 py-2"),
			),
		),

		passwordField("password", "Password", passwordAutocomplete(login)),
		cmp.If(!login,
			passwordField("password_confirm", "Confirm password", "new-password"),
		),

		g.Button(
			g.Type("submit"),
			g.Class("w-full bg-indigo-600 text-white rounded-md py-2 font-medium hover:bg-indigo-700 disabled:opacity-50"),
			cmp.Text(submitLabel),
		),

		g.Div(
			g.Class("flex justify-between text-sm text-indigo-600"),
			modeToggleLink(login, data.Embedded),
			cmp.If(login, forgotPasswordLink(data.Embedded)),
		),
	)
}

// passwordField renders a password input with its show/hide toggle.
// The toggle is a pure client-side flip with no server round trip.
func passwordField(id, label, autocomplete string) cmp.Node {
	return g.Div(
		g.Label(g.For(id), g.Class("block text-sm font-medium mb-1"), cmp.Text(label)),
		g.Div(
			g.Class("relative"),
			g.Input(
				g.Type("password"),
				g.ID(id),
				g.Name(id),
				g.AutoComplete(autocomplete),
				g.Class("w-full border rounded-md px-3 py-2 pr-16"),
			),
			g.Button(
				g.Type("button"),
				g.Class("absolute inset-y-0 right-2 text-sm text-gray-500"),
				cmp.Attr("onclick", "ghToggleVisibility('"+id+"', this)"),
				cmp.Attr("aria-label", "Show "+label),
				cmp.Text("Show"),
			),
		),
	)
}

func passwordAutocomplete(login bool) string {
	if login {
		return "current-password"
	}
	return "new-password"
}

// modeToggleLink swaps in a fresh form in the other mode. Because the
// swap replaces the whole fragment, the toggle clears all entered
// credentials and dismisses the forgot-password panel.
func modeToggleLink(login, embedded bool) cmp.Node {
	mode := dto.ModeSignup
	label := "Need an account? Sign up"
	if !login {
		mode = dto.ModeLogin
		label = "Already have an account? Sign in"
	}

	return g.A(
		g.Href("#"),
		hx.Get(withEmbedded("/auth/password-form?mode="+string(mode), embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Text(label),
	)
}

func forgotPasswordLink(embedded bool) cmp.Node {
	return g.A(
		g.Href("#"),
		hx.Get(withEmbedded("/auth/forgot", embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Text("Forgot your password?"),
	)
}

func troubleshootingPanel() cmp.Node {
	return g.Div(
		g.Class("bg-blue-50 border border-blue-200 text-blue-900 rounded-md px-3 py-2 mb-4 text-sm"),
		g.P(cmp.Text("Account created. Check your inbox for a confirmation link before signing in.")),
		g.P(g.Class("mt-1"), cmp.Text("No email after a few minutes? Look in your spam folder, or sign up again to resend it.")),
	)
}
