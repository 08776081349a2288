package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"quotationdesk/services"
)

// QuotationListItem is one row of the quotation list.
type QuotationListItem struct {
	ID           string
	Segment      string
	Customer     string
	Route        string
	CreatedBy    string
	Location     string
	CreatedDate  string
	FreightTotal string
	DetailURL    string
}

// QuotationListData is everything the list page shows.
type QuotationListData struct {
	Filters   services.Filters
	Query     string
	IsAdmin   bool
	SignedIn  bool
	Locations []string
	Months    []string
	Years     []int

	Items          []QuotationListItem
	RefreshedLabel string
	Error          string
}

// QuotationListPage renders the full list page.
func QuotationListPage(data QuotationListData, header HeaderData) templ.Component {
	return Page("Quotations", header, QuotationListContent(data))
}

// QuotationListContent renders the filter bar and the list. It polls
// itself so the list follows the background refresh.
func QuotationListContent(data QuotationListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		self := "/quotations"
		if data.Query != "" {
			self += "?" + data.Query
		}

		h.printf(`<section id="quotation-list" hx-get="%s" hx-trigger="every 30s" hx-swap="outerHTML">`, href(self))
		h.render(filterBar(data))

		h.raw(`<div class="actions">`)
		h.raw(`<button hx-post="/quotations/refresh" hx-include="#quotation-filters" hx-target="#quotation-list" hx-swap="outerHTML">Refresh</button>`)
		h.printf(`<a href="%s">Export Excel</a>`, href(withQuery("/quotations/export/excel", data.Query)))
		h.printf(`<a href="%s">Export PDF</a>`, href(withQuery("/quotations/export/pdf", data.Query)))
		h.printf(`<span class="muted">Last refreshed %s</span>`, esc(data.RefreshedLabel))
		h.raw(`</div>`)

		if data.Error != "" {
			h.printf(`<p class="error">%s</p>`, esc(data.Error))
		}

		switch {
		case !data.SignedIn:
			h.raw(`<p class="muted">Sign in to see your quotations.</p>`)
		case len(data.Items) == 0:
			h.raw(`<p class="muted">No quotations match the selected filters.</p>`)
		default:
			h.render(quotationTable(data.Items))
		}
		h.raw(`</section>`)
		return h.err
	})
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func filterBar(data QuotationListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		f := data.Filters

		h.raw(`<form id="quotation-filters" class="filters" hx-get="/quotations" hx-trigger="change" hx-target="#quotation-list" hx-swap="outerHTML" hx-push-url="true">`)

		h.printf(`<label><input type="checkbox" name="today" value="1"%s> Today</label>`, checked(f.TodayOnly))

		if data.IsAdmin {
			h.raw(`<select name="scope" aria-label="Scope">`)
			h.printf(`<option value="all"%s>All quotations</option>`, selected(f.Scope == services.ScopeAll))
			h.printf(`<option value="my"%s>My quotations</option>`, selected(f.Scope != services.ScopeAll))
			h.raw(`</select>`)
		}

		h.raw(`<select name="location" aria-label="Location">`)
		h.printf(`<option value="%s">All locations</option>`, services.LocationAll)
		for _, loc := range data.Locations {
			h.printf(`<option value="%s"%s>%s</option>`, esc(loc), selected(f.Location == loc), esc(loc))
		}
		h.raw(`</select>`)

		h.raw(`<select name="year" aria-label="Year"><option value="">All years</option>`)
		for _, y := range data.Years {
			ys := strconv.Itoa(y)
			h.printf(`<option value="%s"%s>%s</option>`, ys, selected(f.Year == y), ys)
		}
		h.raw(`</select>`)

		h.raw(`<select name="month" aria-label="Month"><option value="">All months</option>`)
		for _, m := range data.Months {
			h.printf(`<option value="%s"%s>%s</option>`, esc(m), selected(f.Month == m), esc(m))
		}
		h.raw(`</select>`)

		h.raw(`</form>`)
		return h.err
	})
}

func quotationTable(items []QuotationListItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<table><thead><tr>`)
		for _, col := range []string{"Quotation No", "Segment", "Customer", "Route", "Created By", "Location", "Date", "Freight"} {
			h.printf(`<th>%s</th>`, col)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, it := range items {
			h.raw(`<tr>`)
			h.printf(`<td><a href="%s">%s</a></td>`, href(it.DetailURL), esc(it.ID))
			h.printf(`<td>%s</td>`, esc(it.Segment))
			h.printf(`<td>%s</td>`, esc(it.Customer))
			h.printf(`<td>%s</td>`, esc(it.Route))
			h.printf(`<td>%s</td>`, esc(it.CreatedBy))
			h.printf(`<td>%s</td>`, esc(it.Location))
			h.printf(`<td>%s</td>`, esc(it.CreatedDate))
			h.printf(`<td>%s</td>`, esc(it.FreightTotal))
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		h.printf(`<p class="muted">%d quotations</p>`, len(items))
		return h.err
	})
}
