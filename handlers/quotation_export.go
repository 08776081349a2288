package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

func visibleExportData(e *core.RequestEvent, desk *services.Dashboard) services.ExportData {
	user := GetSessionUser(e.Request)
	f := services.ParseFilters(e.Request.URL.Query(), user)

	all, err := desk.Quotations(e.Request.Context())
	if err != nil {
		log.Printf("quotation_export: load failed, exporting cached list: %v", err)
	}
	return services.BuildExportData(visibleList(desk, all, f, user), f, user, desk.Now())
}

func exportFilename(desk *services.Dashboard, ext string) string {
	return fmt.Sprintf("Quotations %s.%s", desk.Now().Format("2006-01-02"), ext)
}

func writeAttachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(body)
	return err
}

// HandleQuotationExportExcel downloads the visible quotation list as an
// Excel workbook.
func HandleQuotationExportExcel(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := visibleExportData(e, desk)

		xlsx, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("quotation_export: failed to generate Excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		return writeAttachment(e,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			exportFilename(desk, "xlsx"), xlsx)
	}
}

// HandleQuotationExportPDF downloads the visible quotation list as a
// summary PDF.
func HandleQuotationExportPDF(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := visibleExportData(e, desk)

		pdf, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("quotation_export: failed to generate PDF: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF")
		}

		return writeAttachment(e, "application/pdf", exportFilename(desk, "pdf"), pdf)
	}
}

// HandleQuotationPDF downloads one quotation as "{segment} {id}.pdf".
func HandleQuotationPDF(desk *services.Dashboard, brand services.Branding) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, ok, err := findQuotation(e, desk)
		if !ok {
			return err
		}

		out, err := services.GenerateQuotationPDF(services.BuildQuotationDocument(q), brand)
		if err != nil {
			log.Printf("quotation_export: failed to generate PDF for %s: %v", q.ID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		return writeAttachment(e, "application/pdf", out.FileName, out.Bytes)
	}
}

// findQuotation loads the quotation named by the {id} path value. When ok
// is false the error response has been written and err is what the handler
// should return.
func findQuotation(e *core.RequestEvent, desk *services.Dashboard) (q services.Quotation, ok bool, err error) {
	id := e.Request.PathValue("id")
	if id == "" {
		return q, false, e.String(http.StatusBadRequest, "Missing quotation number")
	}

	q, err = desk.Find(e.Request.Context(), id)
	if errors.Is(err, services.ErrQuotationNotFound) {
		log.Printf("quotation: %s not found", id)
		return q, false, e.String(http.StatusNotFound, "Quotation not found")
	}
	if err != nil {
		log.Printf("quotation: could not load %s: %v", id, err)
		return q, false, e.String(http.StatusInternalServerError, "Could not load quotation")
	}
	return q, true, nil
}
