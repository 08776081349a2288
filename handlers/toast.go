package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// ToastCookie carries a toast across a regular (non-HTMX) redirect. The
// page script reads and clears it on load.
const ToastCookie = "flash_toast"

type toastPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetToast adds a showToast event to the HX-Trigger response header,
// keeping any other events already set there, and sets the flash cookie
// so the toast also survives a 302.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := toastPayload{Message: message, Type: toastType}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			events = map[string]any{}
		}
	}
	events["showToast"] = toast

	data, err := json.Marshal(events)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(toast)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     ToastCookie,
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast sets an error toast and stops HTMX from swapping the response
// into the page, so whatever the user was looking at (an open edit form)
// stays as it is.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
