package partials

import (
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// MagicLinkForm renders the one-time-link form: a single email input.
// Once the provider has accepted the request, the sent state replaces
// the form.
func MagicLinkForm(data dto.MagicLinkData) cmp.Node {
	if data.Sent {
		return g.Div(
			g.ID("magic-link-form"),
			Alert(data.Alert),
			g.P(
				g.Class("text-sm text-gray-700"),
				cmp.Text("We sent a sign-in link to "+data.Email+". Open it on this device to finish signing in."),
			),
			g.Div(
				g.Class("mt-4 text-sm text-indigo-600"),
				g.A(
					g.Href("#"),
					hx.Get(withEmbedded("/auth/method?method=link", data.Embedded)),
					hx.Target("#auth-form"),
					hx.Swap("innerHTML"),
					cmp.Text("Use a different email"),
				),
			),
		)
	}

	return g.Form(
		g.ID("magic-link-form"),
		hx.Post(withEmbedded("/auth/magic-link", data.Embedded)),
		hx.Target("#auth-form"),
		hx.Swap("innerHTML"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Class("space-y-4"),

		Alert(data.Alert),

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
			cmp.Text("Email me a sign-in link"),
		),
	)
}
