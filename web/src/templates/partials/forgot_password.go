package partials

import (
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// ForgotPassword renders the forgot-password panel. It replaces the
// password form in the same container; returning to sign-in swaps a
// fresh login form back, which also resets the sent state.
func ForgotPassword(data dto.ForgotPasswordData) cmp.Node {
	if data.Sent {
		return g.Div(
			g.ID("forgot-password"),
			Alert(data.Alert),
			g.P(
				g.Class("text-sm text-gray-700"),
				cmp.Text("If an account exists for "+data.Email+", a password reset link is on its way."),
			),
			g.Div(g.Class("mt-4 text-sm text-indigo-600"), returnToSignInLink(data.Embedded)),
		)
	}

	return g.Form(
		g.ID("forgot-password"),
		hx.Post(withEmbedded("/auth/forgot", data.Embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Class("space-y-4"),

		Alert(data.Alert),

		g.P(
			g.Class("text-sm text-gray-600"),
			cmp.Text("Enter your email and we'll send you a link to reset your password."),
		),

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

		g.Button(
			g.Type("submit"),
			g.Class("w-full bg-indigo-600 text-white rounded-md py-2 font-medium hover:bg-indigo-700 disabled:opacity-50"),
			cmp.Text("Send reset link"),
		),

		g.Div(g.Class("text-sm text-indigo-600"), returnToSignInLink(data.Embedded)),
	)
}

func returnToSignInLink(embedded bool) cmp.Node {
	return g.A(
		g.Href("#"),
		hx.Get(withEmbedded("/auth/password-form?mode=login", embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Text("Return to sign in"),
	)
}
