package handlers

import (
	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

func buildDetailData(q services.Quotation) templates.QuotationDetailData {
	doc := services.BuildQuotationDocument(q)
	base := QuotationURL(q.ID)
	return templates.QuotationDetailData{
		Doc:      doc,
		Fields:   services.ResolveFields(doc.Kind, q),
		EditURL:  base + "/edit",
		PDFURL:   base + "/export/pdf",
		EmailURL: base + "/email",
		BackURL:  "/quotations",
	}
}

func renderDetail(e *core.RequestEvent, q services.Quotation) error {
	data := buildDetailData(q)

	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.QuotationDetailContent(data)
	} else {
		component = templates.QuotationDetailPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuotationView renders the read-only detail view of a quotation.
func HandleQuotationView(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, ok, err := findQuotation(e, desk)
		if !ok {
			return err
		}
		return renderDetail(e, q)
	}
}
