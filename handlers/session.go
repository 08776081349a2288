package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleLogin signs in as the demo account named by the "username" form
// value and returns to the quotation list.
func HandleLogin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		username := strings.TrimSpace(e.Request.FormValue("username"))
		if username == "" {
			return ErrorToast(e, http.StatusBadRequest, "Choose an account to sign in")
		}

		rec, err := app.FindFirstRecordByData("demo_users", "username", username)
		if err != nil {
			log.Printf("session: unknown user %q: %v", username, err)
			return ErrorToast(e, http.StatusUnauthorized, "Unknown account")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     SessionCookie,
			Value:    rec.GetString("username"),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		SetToast(e, "success", "Signed in as "+sessionUserFromRecord(rec).DisplayName())

		return redirect(e, "/quotations")
	}
}

// HandleLogout clears the session and returns to the quotation list.
func HandleLogout() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clearSessionCookie(e)
		SetToast(e, "success", "Signed out")
		return redirect(e, "/quotations")
	}
}

func redirect(e *core.RequestEvent, url string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", url)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, url)
}
