package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/gatehouse-dev/gatehouse/internal/view"
	cmp "maragu.dev/gomponents"
)

// Attribution is the provider attribution footer shown on the
// self-contained sign-in page (never in embedded mode). It is a templ
// component bridged into the gomponents tree through the adapter, the
// same hybrid path the rest of the app supports.
func Attribution() cmp.Node {
	footer := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<footer class="mt-6 text-center text-xs text-gray-400">Authentication powered by <a href="https://github.com/supabase/auth" class="underline">GoTrue</a></footer>`)
		return err
	})
	return view.AdaptTemplToGomponent(footer)
}
