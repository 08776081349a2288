package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quotationdesk/testhelpers"
)

func TestHandleQuotationList_FullPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations", nil), vikramUser)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationList(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<!DOCTYPE html>",
		`id="quotation-list"`,
		"QT-202506-0012",
		"Nhava Sheva - Hamburg",
		"USD 1,200.00",
		`href="/quotations/QT-202506-0012"`,
		"1 quotations",
	)
	if strings.Contains(body, "QT-202506-0009") {
		t.Error("sales user should not see another user's quotation")
	}
	if strings.Contains(body, `name="scope"`) {
		t.Error("scope selector should be hidden from non-admins")
	}
}

func TestHandleQuotationList_HTMXPartialForAdmin(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations", nil), adminUser)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationList(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX request should get a partial")
	}
	testhelpers.AssertHTMLContains(t, body, "QT-202506-0012", "QT-202506-0009", `name="scope"`, "2 quotations")

	// newest first
	if strings.Index(body, "QT-202506-0012") > strings.Index(body, "QT-202506-0009") {
		t.Error("expected quotations sorted by created date, newest first")
	}
}

func TestHandleQuotationList_LocationFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations?location=Delhi&year=2025&month=June", nil), adminUser)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationList(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "QT-202506-0009", `<option value="Delhi" selected>Delhi</option>`)
	if strings.Contains(body, "QT-202506-0012") {
		t.Error("Mumbai quotation should be filtered out")
	}
}

func TestHandleQuotationList_Anonymous(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := httptest.NewRequest(http.MethodGet, "/quotations", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationList(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Sign in to see your quotations.")
	if strings.Contains(body, "QT-202506") {
		t.Error("anonymous visitors should see no quotations")
	}
}

func TestHandleQuotationList_APIDown(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, api := newTestDesk(t, sampleQuotations()...)
	api.SetFailList(true)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations", nil), adminUser)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationList(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"could not be reached",
		"No quotations match the selected filters.",
	)
}

func TestHandleQuotationRefresh(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, api := newTestDesk(t, sampleQuotations()...)

	// prime the cache
	list := withUser(httptest.NewRequest(http.MethodGet, "/quotations", nil), adminUser)
	if err := HandleQuotationList(desk)(newTestRequestEvent(app, list, httptest.NewRecorder())); err != nil {
		t.Fatalf("list handler returned error: %v", err)
	}

	form := url.Values{"location": {"Delhi"}}
	req := withUser(httptest.NewRequest(http.MethodPost, "/quotations/refresh", strings.NewReader(form.Encode())), adminUser)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationRefresh(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if got := api.ListCalls(); got != 2 {
		t.Errorf("expected refresh to bypass the cache (2 list calls), got %d", got)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Quotations refreshed") {
		t.Errorf("expected success toast, got HX-Trigger %q", rec.Header().Get("HX-Trigger"))
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "QT-202506-0009", "Last refreshed")
	if strings.Contains(body, "QT-202506-0012") {
		t.Error("refresh should keep the submitted filters")
	}
}

func TestHandleQuotationExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations/export/excel", nil), adminUser)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationExportExcel(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="Quotations `) || !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a workbook in the body")
	}
}

func TestHandleQuotationExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	desk, _ := newTestDesk(t, sampleQuotations()...)

	req := withUser(httptest.NewRequest(http.MethodGet, "/quotations/export/pdf", nil), vikramUser)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleQuotationExportPDF(desk)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected a PDF in the body")
	}
}
