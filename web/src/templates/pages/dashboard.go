package pages

import (
	"github.com/gatehouse-dev/gatehouse/internal/provider"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard is the signed-in landing page. All it knows about the user
// is what the auth provider reports for the session token.
func Dashboard(user *provider.User) cmp.Node {
	return g.Div(
		g.Class("min-h-screen flex items-center justify-center px-4"),
		g.Div(
			g.Class("bg-white rounded-xl shadow-lg p-8 w-full max-w-md text-center"),
			g.H1(g.Class("text-2xl font-bold mb-2"), cmp.Text("Welcome back")),
			g.P(g.Class("text-gray-600 mb-6"), cmp.Text("Signed in as "+user.Email)),
			g.A(
				g.Href("/auth/logout"),
				g.Class("inline-block bg-gray-200 rounded-md px-4 py-2 text-sm font-medium hover:bg-gray-300"),
				cmp.Text("Sign out"),
			),
		),
	)
}
