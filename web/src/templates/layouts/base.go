package layouts

import (
	"github.com/gatehouse-dev/gatehouse/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Base wraps page content in the HTML shell: head, htmx, the toast
// region fed by flash messages, and the script powering the
// password-visibility toggles.
func Base(title string, flashes view.FlashData, content cmp.Node) cmp.Node {
	return g.HTML(
		g.Lang("en"),
		g.Head(
			g.Meta(g.Charset("utf-8")),
			g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
			g.TitleEl(cmp.Text(title)),
			g.Script(g.Src("https://unpkg.com/htmx.org@1.9.12")),
			g.Script(g.Src("/static/js/gatehouse.js"), g.Defer()),
			g.Link(g.Rel("stylesheet"), g.Href("/static/css/gatehouse.css")),
		),
		g.Body(
			g.Class("bg-gray-100 min-h-screen"),
			Toasts(flashes),
			content,
		),
	)
}

// Toasts renders the transient notification region. Flash messages are
// consumed on retrieval, so each one is shown exactly once.
func Toasts(flashes view.FlashData) cmp.Node {
	if len(flashes.Success) == 0 && len(flashes.Error) == 0 {
		return nil
	}

	return g.Div(
		g.ID("toasts"),
		g.Class("fixed top-4 right-4 z-50 space-y-2"),
		cmp.Group(toastNodes(flashes.Success, "bg-green-600")),
		cmp.Group(toastNodes(flashes.Error, "bg-red-600")),
	)
}

func toastNodes(messages []string, color string) []cmp.Node {
	nodes := make([]cmp.Node, 0, len(messages))
	for _, msg := range messages {
		nodes = append(nodes, g.Div(
			g.Class("toast text-white rounded-lg px-4 py-3 shadow-lg "+color),
			g.Role("status"),
			cmp.Text(msg),
		))
	}
	return nodes
}
