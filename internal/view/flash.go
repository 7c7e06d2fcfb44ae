package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"

	// flashKeyFormEmail preserves a submitted email across a
	// redirect-after-post so the form can be pre-filled on re-render.
	flashKeyFormEmail = "form_email"
)

// FlashData carries the transient notifications for one render. Both
// slices are consumed (cleared from the session) when retrieved.
type FlashData struct {
	Success []string
	Error   []string
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, _ := session.Get(flashSessionName, c)
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormEmail preserves a submitted email for the next render.
func SetFormEmail(c echo.Context, email string) {
	setFlash(c, flashKeyFormEmail, email)
}

// GetFormEmail retrieves and clears a preserved form email, if any.
func GetFormEmail(c echo.Context) string {
	sess, _ := session.Get(flashSessionName, c)
	flashes := sess.Flashes(flashKeyFormEmail)
	if len(flashes) == 0 {
		return ""
	}
	// Save to persist the clearing of the consumed flash.
	_ = sess.Save(c.Request(), c.Response())
	email, _ := flashes[0].(string)
	return email
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, _ := session.Get(flashSessionName, c)

	// The Flashes() method retrieves and then clears the flashes from the session.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)

	for _, f := range successFlashes {
		if msg, ok := f.(string); ok {
			data.Success = append(data.Success, msg)
		}
	}
	for _, f := range errorFlashes {
		if msg, ok := f.(string); ok {
			data.Error = append(data.Error, msg)
		}
	}

	// If we consumed flashes, save the session to persist the clearing.
	if len(successFlashes) > 0 || len(errorFlashes) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}
