// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates a demo_users record and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, username, fullName, role, location string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("demo_users")
	if err != nil {
		t.Fatalf("failed to find demo_users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("username", username)
	record.Set("full_name", fullName)
	record.Set("role", role)
	record.Set("location", location)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// FakeQuotationAPI is an in-memory quotation API served over HTTP.
type FakeQuotationAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	quotations []services.Quotation
	listCalls  int
	updates    []string
	failList   bool
	rejectMsg  string
}

// NewFakeQuotationAPI starts a fake API serving quotations. The base URL
// for services.NewClient is BaseURL().
func NewFakeQuotationAPI(t *testing.T, quotations ...services.Quotation) *FakeQuotationAPI {
	t.Helper()

	api := &FakeQuotationAPI{quotations: quotations}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quotations", api.handleList)
	mux.HandleFunc("PUT /api/quotations/{id}", api.handleUpdate)
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Server.Close)

	return api
}

// BaseURL is the API base, ending in /api.
func (a *FakeQuotationAPI) BaseURL() string {
	return a.Server.URL + "/api"
}

// SetFailList makes GET /quotations answer 500 while fail is true.
func (a *FakeQuotationAPI) SetFailList(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failList = fail
}

// RejectUpdates makes every PUT /quotations/{id} answer 409 with msg.
func (a *FakeQuotationAPI) RejectUpdates(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rejectMsg = msg
}

// ListCalls returns how many list requests were served.
func (a *FakeQuotationAPI) ListCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listCalls
}

// Updates returns the keys of the update requests received, in order.
func (a *FakeQuotationAPI) Updates() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.updates...)
}

// Quotation returns the stored copy of a quotation.
func (a *FakeQuotationAPI) Quotation(id string) (services.Quotation, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, q := range a.quotations {
		if q.ID == id {
			return q, true
		}
	}
	return services.Quotation{}, false
}

func (a *FakeQuotationAPI) handleList(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.listCalls++
	fail := a.failList
	data := append([]services.Quotation{}, a.quotations...)
	a.mu.Unlock()

	if fail {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database offline"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (a *FakeQuotationAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key, _ := url.PathUnescape(r.PathValue("id"))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": err.Error()})
		return
	}
	var q services.Quotation
	if err := json.Unmarshal(body, &q); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": err.Error()})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.updates = append(a.updates, key)

	if a.rejectMsg != "" {
		writeJSON(w, http.StatusConflict, map[string]any{"success": false, "message": a.rejectMsg})
		return
	}
	for i := range a.quotations {
		if a.quotations[i].ID == key || (a.quotations[i].StorageID != "" && a.quotations[i].StorageID == key) {
			a.quotations[i] = q
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": q})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Quotation not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
