package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

type contextKey string

const SessionUserKey contextKey = "sessionUser"
const HeaderDataKey contextKey = "headerData"

// SessionCookie holds the username of the signed-in demo account.
const SessionCookie = "desk_user"

// GetSessionUser extracts the signed-in user from the request context.
// It returns nil for anonymous visitors.
func GetSessionUser(r *http.Request) *services.SessionUser {
	if val, ok := r.Context().Value(SessionUserKey).(*services.SessionUser); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// SessionMiddleware reads the session cookie, loads the demo account it
// names, builds HeaderData with the account list, and stores both in the
// request context so handlers and templates can use them.
func SessionMiddleware(app *pocketbase.PocketBase, companyName string) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var user *services.SessionUser

		cookie, err := e.Request.Cookie(SessionCookie)
		if err == nil && cookie.Value != "" {
			rec, err := app.FindFirstRecordByData("demo_users", "username", cookie.Value)
			if err == nil {
				user = sessionUserFromRecord(rec)
			} else {
				log.Printf("middleware: session user %s not found, clearing cookie", cookie.Value)
				clearSessionCookie(e)
			}
		}

		header := templates.HeaderData{
			CompanyName: companyName,
			User:        user,
		}
		if user == nil {
			header.Users = loadUserOptions(app)
		}

		ctx := context.WithValue(e.Request.Context(), SessionUserKey, user)
		ctx = context.WithValue(ctx, HeaderDataKey, header)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

func sessionUserFromRecord(rec *core.Record) *services.SessionUser {
	return &services.SessionUser{
		Username: rec.GetString("username"),
		FullName: rec.GetString("full_name"),
		Role:     rec.GetString("role"),
		Location: rec.GetString("location"),
	}
}

func loadUserOptions(app *pocketbase.PocketBase) []templates.UserOption {
	col, err := app.FindCollectionByNameOrId("demo_users")
	if err != nil {
		return nil
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		log.Printf("middleware: could not list demo users: %v", err)
		return nil
	}
	opts := make([]templates.UserOption, 0, len(records))
	for _, rec := range records {
		label := rec.GetString("full_name")
		if label == "" {
			label = rec.GetString("username")
		}
		if loc := rec.GetString("location"); loc != "" {
			label += " (" + loc + ")"
		}
		if rec.GetString("role") == "admin" {
			label += " - admin"
		}
		opts = append(opts, templates.UserOption{Username: rec.GetString("username"), Label: label})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Label < opts[j].Label })
	return opts
}

func clearSessionCookie(e *core.RequestEvent) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
