package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// EmailDraft is a quotation prepared for pasting into a mail composer.
type EmailDraft struct {
	Subject   string
	HTML      string
	Text      string
	MailtoURI string
}

const (
	emailFont      = "font-family:Arial,Helvetica,sans-serif;font-size:13px;color:#212529;"
	emailTable     = "border-collapse:collapse;width:100%;margin:0 0 16px 0;"
	emailCell      = "border:1px solid #dee2e6;padding:6px 8px;vertical-align:top;"
	emailLabelCell = emailCell + "background:#f8f9fa;font-weight:bold;width:20%;"
	emailHeadCell  = emailCell + "background:#212529;color:#ffffff;font-weight:bold;text-align:left;"
	emailHeading   = "font-size:15px;margin:20px 0 8px 0;color:#212529;"
)

// QuotationEmailHTML returns the email body component for a quotation.
func QuotationEmailHTML(doc QuotationDocument, brand Branding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &emailPrinter{w: w}

		p.printf(`<div style="%s">`, emailFont)
		p.printf(`<table style="%s"><tr>`, emailTable)
		p.printf(`<td style="font-size:20px;font-weight:bold;padding:0 0 4px 0;">%s</td>`, esc(brand.CompanyName))
		p.printf(`<td style="font-size:20px;font-weight:bold;text-align:right;padding:0 0 4px 0;">QUOTATION</td>`)
		p.printf(`</tr></table>`)

		p.printf(`<table style="%s">`, emailTable)
		p.printf(`<tr><td style="%s">Quotation No</td><td style="%s">%s</td>`, emailLabelCell, emailCell, esc(doc.ID))
		p.printf(`<td style="%s">Date</td><td style="%s">%s</td></tr>`, emailLabelCell, emailCell, esc(doc.CreatedDate))
		p.printf(`<tr><td style="%s">Segment</td><td style="%s">%s</td>`, emailLabelCell, emailCell, esc(doc.SegmentLabel()))
		p.printf(`<td style="%s">Prepared By</td><td style="%s">%s</td></tr>`, emailLabelCell, emailCell, esc(preparedBy(doc)))
		p.printf(`</table>`)

		if doc.Customer != "" || doc.Consignee != "" {
			p.printf(`<table style="%s">`, emailTable)
			p.printf(`<tr><th style="%s">Customer</th><th style="%s">Consignee</th></tr>`, emailHeadCell, emailHeadCell)
			p.printf(`<tr><td style="%s">%s</td><td style="%s">%s</td></tr>`,
				emailCell, multiline(orNAString(doc.Customer)), emailCell, multiline(orNAString(doc.Consignee)))
			p.printf(`</table>`)
		}

		if len(doc.Fields) > 0 {
			p.printf(`<h3 style="%s">Shipment Details</h3>`, emailHeading)
			p.printf(`<table style="%s">`, emailTable)
			for _, r := range doc.Fields {
				p.printf(`<tr><td style="%s">%s</td><td style="%s">%s</td><td style="%s">%s</td><td style="%s">%s</td></tr>`,
					emailLabelCell, esc(r.Left.Label), emailCell, esc(r.Left.Value),
					emailLabelCell, esc(r.Right.Label), emailCell, esc(r.Right.Value))
			}
			p.printf(`</table>`)
		}

		for _, s := range doc.Charges {
			p.printf(`<h3 style="%s">%s</h3>`, emailHeading, esc(s.Title))
			p.printf(`<table style="%s"><tr>`, emailTable)
			for _, h := range []string{"#", "Charges", "Currency", "Amount", "Unit"} {
				p.printf(`<th style="%s">%s</th>`, emailHeadCell, h)
			}
			p.printf(`</tr>`)
			for _, l := range s.Lines {
				p.printf(`<tr><td style="%s">%d</td><td style="%s">%s</td><td style="%s">%s</td><td style="%stext-align:right;">%s</td><td style="%s">%s</td></tr>`,
					emailCell, l.SINo, emailCell, esc(l.Description), emailCell, esc(l.Currency),
					emailCell, esc(l.Amount), emailCell, esc(l.Unit))
			}
			if len(s.Totals) > 0 {
				p.printf(`<tr><td colspan="3" style="%stext-align:right;font-weight:bold;">Total</td><td colspan="2" style="%stext-align:right;font-weight:bold;">%s</td></tr>`,
					emailCell, emailCell, esc(FormatTotals(s.Totals)))
			}
			p.printf(`</table>`)
		}

		if doc.Remarks != "" {
			p.printf(`<h3 style="%s">Remarks</h3>`, emailHeading)
			p.printf(`<p style="margin:0 0 16px 0;">%s</p>`, multiline(doc.Remarks))
		}

		if len(doc.Terms) > 0 {
			p.printf(`<h3 style="%s">Terms &amp; Conditions</h3>`, emailHeading)
			p.printf(`<ol style="margin:0 0 16px 0;padding-left:20px;">`)
			for _, t := range doc.Terms {
				p.printf(`<li style="margin:0 0 4px 0;">%s</li>`, esc(t))
			}
			p.printf(`</ol>`)
		}

		p.printf(`<p style="margin:24px 0 0 0;color:#6c757d;font-size:12px;">%s`, esc(brand.Tagline))
		if brand.Email != "" {
			p.printf(`<br>%s`, esc(brand.Email))
		}
		p.printf(`</p></div>`)
		return p.err
	})
}

type emailPrinter struct {
	w   io.Writer
	err error
}

func (p *emailPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func multiline(s string) string {
	return strings.ReplaceAll(esc(s), "\n", "<br>")
}

func orNAString(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// RenderQuotationEmail renders the HTML body, its plain-text fallback and
// the subject-only mailto URI.
func RenderQuotationEmail(ctx context.Context, doc QuotationDocument, brand Branding) (EmailDraft, error) {
	var buf bytes.Buffer
	if err := QuotationEmailHTML(doc, brand).Render(ctx, &buf); err != nil {
		return EmailDraft{}, fmt.Errorf("render quotation email: %w", err)
	}
	subject := doc.EmailSubject()
	return EmailDraft{
		Subject:   subject,
		HTML:      buf.String(),
		Text:      convertHTMLToText(buf.String()),
		MailtoURI: MailtoURI(subject),
	}, nil
}

// MailtoURI builds a mailto URI carrying only a subject. Spaces are
// encoded as %20 since mail clients do not decode "+".
func MailtoURI(subject string) string {
	return "mailto:?subject=" + strings.ReplaceAll(url.QueryEscape(subject), "+", "%20")
}

// convertHTMLToText converts the email HTML to plain text for clients
// that do not accept the rich payload.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var listIndex int
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "table", "tr":
				text.WriteString("\n")
			case "ol":
				listIndex = 0
				text.WriteString("\n")
			case "li":
				listIndex++
				fmt.Fprintf(&text, "\n%d. ", listIndex)
			case "td", "th":
				if n.PrevSibling != nil {
					text.WriteString(" | ")
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3", "table":
				text.WriteString("\n")
			}
		}
	}
	extractText(doc)

	lines := strings.Split(text.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Clipboard receives a rich copy payload.
type Clipboard interface {
	WriteDual(html, text string) error
}

// Composer opens the user's mail composer.
type Composer interface {
	Open(uri string) error
}

// ShareResult is the outcome of ShareQuotationEmail.
type ShareResult struct {
	Subject        string
	MailtoURI      string
	Copied         bool
	ComposerOpened bool
	Instruction    string
	// Err joins every *ShareError that occurred; the share itself never fails.
	Err error
}

// ShareQuotationEmail copies the draft onto the clipboard as HTML plus
// plain text, then opens the composer with the subject only. A clipboard
// failure does not stop the composer from opening; the result then tells
// the user to paste the quotation manually.
func ShareQuotationEmail(draft EmailDraft, clipboard Clipboard, composer Composer) ShareResult {
	res := ShareResult{Subject: draft.Subject, MailtoURI: draft.MailtoURI}
	var errs []error

	if clipboard != nil {
		if err := clipboard.WriteDual(draft.HTML, draft.Text); err != nil {
			errs = append(errs, &ShareError{Step: "clipboard", Err: err})
		} else {
			res.Copied = true
		}
	} else {
		errs = append(errs, &ShareError{Step: "clipboard", Err: errors.New("no clipboard available")})
	}

	if composer != nil {
		if err := composer.Open(draft.MailtoURI); err != nil {
			errs = append(errs, &ShareError{Step: "composer", Err: err})
		} else {
			res.ComposerOpened = true
		}
	}

	res.Instruction = ShareInstruction(draft.Subject, res.Copied, res.ComposerOpened)

	res.Err = errors.Join(errs...)
	return res
}

// ShareInstruction is the message shown to the user after a share,
// depending on which of the two steps succeeded.
func ShareInstruction(subject string, copied, composerOpened bool) string {
	switch {
	case copied && composerOpened:
		return "The quotation has been copied. Paste it into the email body."
	case copied:
		return fmt.Sprintf("The quotation has been copied. Open your mail client, use the subject %q and paste it into the body.", subject)
	case composerOpened:
		return "The quotation could not be copied automatically. Copy it from the preview and paste it into the email body manually."
	default:
		return fmt.Sprintf("The quotation could not be copied automatically. Open your mail client, use the subject %q and paste the quotation from the preview.", subject)
	}
}
