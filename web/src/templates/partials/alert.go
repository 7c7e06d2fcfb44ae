package partials

import (
	dto "github.com/gatehouse-dev/gatehouse/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Alert renders an inline notification inside a form fragment. Returns
// nothing when there is no alert to show.
func Alert(alert *dto.Alert) cmp.Node {
	if alert == nil {
		return nil
	}

	color := "bg-red-50 border-red-300 text-red-800"
	if alert.Success {
		color = "bg-green-50 border-green-300 text-green-800"
	}

	return g.Div(
		g.Class("border rounded-md px-3 py-2 mb-4 text-sm "+color),
		g.Role("alert"),
		cmp.Text(alert.Message),
	)
}
