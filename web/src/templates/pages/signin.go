package pages

import (
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	"github.com/gatehouse-dev/gatehouse/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// SignIn renders the sign-in page: the method selector and the active
// sub-form. Every render forces the one-time-link method, so a method
// choice never survives a remount (for example after sign-out).
func SignIn(data dto.SignInData) cmp.Node {
	card := g.Div(
		g.Class("bg-white rounded-xl shadow-lg p-8 w-full max-w-md"),

		g.H1(g.Class("text-2xl font-bold text-center mb-6"), cmp.Text("Sign in")),

		AuthPanel(data),

		cmp.If(!data.Embedded, partials.Attribution()),
	)

	if data.Embedded {
		return card
	}

	return g.Div(
		g.Class("min-h-screen flex items-center justify-center px-4"),
		card,
	)
}

// AuthPanel is the method selector plus the active sub-form. Switching
// methods swaps the whole panel, so the selector highlight follows the
// choice and the previous sub-form is discarded along with any
// in-progress state.
func AuthPanel(data dto.SignInData) cmp.Node {
	return g.Div(
		g.ID("auth-panel"),
		methodSelector(data),
		g.Div(
			g.ID("auth-form"),
			activeForm(data),
		),
	)
}

func methodSelector(data dto.SignInData) cmp.Node {
	return g.Div(
		g.Class("grid grid-cols-2 gap-2 mb-6"),
		g.Role("tablist"),
		methodButton("One-time link", dto.MethodMagicLink, data),
		methodButton("Password", dto.MethodPassword, data),
	)
}

func methodButton(label string, method dto.Method, data dto.SignInData) cmp.Node {
	class := "border rounded-md py-2 text-sm font-medium"
	if method == data.Method {
		class += " bg-indigo-600 text-white border-indigo-600"
	} else {
		class += " bg-white text-gray-700 hover:bg-gray-50"
	}

	url := "/auth/method?method=" + string(method)
	if data.Embedded {
		url += "&embedded=1"
	}

	return g.Button(
		g.Type("button"),
		g.Class(class),
		g.Role("tab"),
		hx.Get(url),
		hx.Target("#auth-panel"),
		hx.Swap("outerHTML"),
		cmp.Text(label),
	)
}

func activeForm(data dto.SignInData) cmp.Node {
	if data.Method == dto.MethodPassword {
		return partials.PasswordForm(dto.PasswordFormData{Mode: dto.ModeLogin, Embedded: data.Embedded})
	}
	return partials.MagicLinkForm(dto.MagicLinkData{Embedded: data.Embedded})
}
