package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

const staleListMessage = "The quotation service could not be reached. Showing the last loaded quotations."

// QuotationURL is the detail page of a quotation.
func QuotationURL(id string) string {
	return "/quotations/" + url.PathEscape(id)
}

// visibleList returns the quotations the user may see under f.
func visibleList(desk *services.Dashboard, all []services.Quotation, f services.Filters, user *services.SessionUser) []services.Quotation {
	return services.VisibleQuotations(all, f, user, desk.Now())
}

func buildListData(desk *services.Dashboard, all []services.Quotation, f services.Filters, user *services.SessionUser, loadErr error) templates.QuotationListData {
	export := services.BuildExportData(visibleList(desk, all, f, user), f, user, desk.Now())

	items := make([]templates.QuotationListItem, 0, len(export.Rows))
	for _, r := range export.Rows {
		items = append(items, templates.QuotationListItem{
			ID:           r.ID,
			Segment:      r.Segment,
			Customer:     r.Customer,
			Route:        r.Route,
			CreatedBy:    r.CreatedBy,
			Location:     r.Location,
			CreatedDate:  r.CreatedDate,
			FreightTotal: r.FreightTotal,
			DetailURL:    QuotationURL(r.ID),
		})
	}

	data := templates.QuotationListData{
		Filters:        f,
		Query:          f.Query().Encode(),
		IsAdmin:        user.IsAdmin(),
		SignedIn:       user != nil,
		Locations:      services.LocationOptions,
		Months:         services.MonthOptions,
		Years:          services.YearOptions(all),
		Items:          items,
		RefreshedLabel: services.FormatRelative(desk.LastRefreshed(), desk.Now()),
	}
	if loadErr != nil || desk.LastError() != nil {
		data.Error = staleListMessage
	}
	return data
}

func renderList(e *core.RequestEvent, data templates.QuotationListData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.QuotationListContent(data)
	} else {
		component = templates.QuotationListPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuotationList renders the quotation list for the signed-in user.
// Filters come from the query string.
func HandleQuotationList(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := GetSessionUser(e.Request)
		f := services.ParseFilters(e.Request.URL.Query(), user)

		all, err := desk.Quotations(e.Request.Context())
		if err != nil {
			log.Printf("quotation_list: load failed, showing cached list: %v", err)
		}

		return renderList(e, buildListData(desk, all, f, user, err))
	}
}

// HandleQuotationRefresh forces a reload from the quotation API and
// re-renders the list with the submitted filters.
func HandleQuotationRefresh(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		user := GetSessionUser(e.Request)
		f := services.ParseFilters(e.Request.Form, user)

		all, err := desk.Refresh(e.Request.Context())
		if err != nil {
			log.Printf("quotation_list: refresh failed: %v", err)
			SetToast(e, "error", "Refresh failed. Showing the last loaded quotations.")
		} else {
			SetToast(e, "success", "Quotations refreshed")
		}

		return renderList(e, buildListData(desk, all, f, user, err))
	}
}
