package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withUser puts user into the request context the way SessionMiddleware does.
func withUser(req *http.Request, user *services.SessionUser) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), SessionUserKey, user))
}

// newTestDesk returns a dashboard backed by a fake quotation API.
func newTestDesk(t *testing.T, quotations ...services.Quotation) (*services.Dashboard, *testhelpers.FakeQuotationAPI) {
	t.Helper()
	api := testhelpers.NewFakeQuotationAPI(t, quotations...)
	desk := services.NewDashboard(services.DashboardConfig{
		API: services.NewClient(api.BaseURL(), 2*time.Second),
	})
	t.Cleanup(desk.Unmount)
	return desk, api
}

var (
	adminUser  = &services.SessionUser{Username: "anita", FullName: "Anita Desai", Role: "admin", Location: "Mumbai"}
	vikramUser = &services.SessionUser{Username: "vikram", FullName: "Vikram Singh", Role: "sales", Location: "Mumbai"}
)

func sampleQuotations() []services.Quotation {
	return []services.Quotation{
		{
			ID:                 "QT-202506-0012",
			StorageID:          "66a1",
			Segment:            "Sea FCL Export",
			CustomerName:       "Acme Exports",
			Equipment:          "40ft Standard",
			POL:                "Nhava Sheva",
			POD:                "Hamburg",
			FreightCharges:     []services.Charge{{Charges: "Ocean Freight", Currency: "USD", Amount: "1200"}},
			TermsAndConditions: []string{"Valid for 7 days"},
			CreatedBy:          "Vikram Singh",
			CreatedByLocation:  "Mumbai",
			CreatedDate:        "2025-06-15",
		},
		{
			ID:                   "QT-202506-0009",
			Segment:              "Air Export",
			CustomerName:         "Globex",
			AirPortOfDeparture:   "BOM",
			AirPortOfDestination: "FRA",
			CreatedBy:            "Ravi Kumar",
			CreatedByLocation:    "Delhi",
			CreatedDate:          "2025-06-10",
		},
	}
}
