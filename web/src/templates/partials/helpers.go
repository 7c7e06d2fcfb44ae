package partials

import "strings"

// withEmbedded appends the embedded flag to a fragment URL so that
// subsequent swaps keep rendering without page chrome.
func withEmbedded(path string, embedded bool) string {
	if !embedded {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&embedded=1"
	}
	return path + "?embedded=1"
}
