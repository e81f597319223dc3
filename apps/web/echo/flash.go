package echoweb

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	flashCookie     = "spms_flash"
	contextFlashKey = "flashes"

	variantDefault     = "default"
	variantDestructive = "destructive"
)

// Flash is a toast notification.
type Flash struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"`
}

func errorFlash(desc string) Flash {
	return Flash{Title: "Error", Description: desc, Variant: variantDestructive}
}

func successFlash(title string) Flash {
	return Flash{Title: title, Variant: variantDefault}
}

// flashMiddleware moves the flashes set by the previous response into the request context,
// consuming the cookie.
func flashMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if c, err := ctx.Cookie(flashCookie); err == nil {
			var flashes []Flash
			if data, err := base64.RawURLEncoding.DecodeString(c.Value); err == nil {
				_ = json.Unmarshal(data, &flashes)
			}
			ctx.Set(contextFlashKey, flashes)
			ctx.SetCookie(&http.Cookie{
				Name:     flashCookie,
				Path:     "/",
				Expires:  time.Unix(0, 0),
				MaxAge:   -1,
				HttpOnly: true,
			})
		}
		return next(ctx)
	}
}

func getFlashes(ctx echo.Context) []Flash {
	flashes, _ := ctx.Get(contextFlashKey).([]Flash)
	return flashes
}

// flashNow shows f on the page rendered by this request.
func flashNow(ctx echo.Context, f Flash) {
	ctx.Set(contextFlashKey, append(getFlashes(ctx), f))
}

// flashNext shows f on the next page, typically after a redirect.
func flashNext(ctx echo.Context, f Flash) {
	data, err := json.Marshal([]Flash{f})
	if err != nil {
		return
	}
	ctx.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
