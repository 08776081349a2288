package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

func renderEditForm(e *core.RequestEvent, q services.Quotation, errs []services.ValidationError) error {
	base := QuotationURL(q.ID)
	data := templates.QuotationEditData{
		Quotation: q,
		Errors:    errs,
		ActionURL: base + "/save",
		CancelURL: base,
	}

	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.QuotationEditContent(data)
	} else {
		component = templates.QuotationEditPage(data, GetHeaderData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuotationEdit renders the edit form for a quotation.
func HandleQuotationEdit(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, ok, err := findQuotation(e, desk)
		if !ok {
			return err
		}
		return renderEditForm(e, q, nil)
	}
}

// HandleQuotationSave stages the submitted form onto the quotation and
// saves it through the quotation API. Invalid input and rejected saves
// keep the form open with what was typed.
func HandleQuotationSave(desk *services.Dashboard) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, ok, err := findQuotation(e, desk)
		if !ok {
			return err
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		staged, errs := services.ApplyForm(q, e.Request.PostForm)
		if len(errs) > 0 {
			log.Printf("quotation_edit: validation failed for %s: %v", q.ID, services.ValidationErrors(errs))
			SetToast(e, "error", "Please fix the highlighted fields")
			return renderEditForm(e, staged, errs)
		}

		saved, err := desk.Save(e.Request.Context(), staged)
		if err != nil {
			log.Printf("quotation_edit: save failed for %s: %v", q.ID, err)
			var conflict *services.SaveConflictError
			if errors.As(err, &conflict) && conflict.Message != "" {
				return ErrorToast(e, http.StatusBadGateway, "Save failed: "+conflict.Message)
			}
			return ErrorToast(e, http.StatusBadGateway, "Save failed. Your changes are still in the form.")
		}

		SetToast(e, "success", "Quotation saved")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Push-Url", QuotationURL(saved.ID))
			return renderDetail(e, saved)
		}
		return e.Redirect(http.StatusFound, QuotationURL(saved.ID))
	}
}
