package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

type emailResponse struct {
	Subject             string `json:"subject"`
	HTML                string `json:"html"`
	Text                string `json:"text"`
	Mailto              string `json:"mailto"`
	Instruction         string `json:"instruction"`
	FallbackInstruction string `json:"fallbackInstruction"`
}

// HandleQuotationEmail prepares the email share of a quotation. A
// "clipboard=0" query value means the browser cannot write rich clipboard
// content and the user is told to paste manually.
func HandleQuotationEmail(desk *services.Dashboard, brand services.Branding) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, ok, err := findQuotation(e, desk)
		if !ok {
			return err
		}

		draft, err := services.RenderQuotationEmail(e.Request.Context(), services.BuildQuotationDocument(q), brand)
		if err != nil {
			log.Printf("quotation_email: failed to render %s: %v", q.ID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to prepare email"})
		}

		// The page script performs the clipboard write and opens the
		// composer; it shows fallbackInstruction when the write fails.
		copied := e.Request.URL.Query().Get("clipboard") != "0"

		return e.JSON(http.StatusOK, emailResponse{
			Subject:             draft.Subject,
			HTML:                draft.HTML,
			Text:                draft.Text,
			Mailto:              draft.MailtoURI,
			Instruction:         services.ShareInstruction(draft.Subject, copied, true),
			FallbackInstruction: services.ShareInstruction(draft.Subject, false, true),
		})
	}
}
