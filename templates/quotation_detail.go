package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quotationdesk/services"
)

// QuotationDetailData is the read-only view of one quotation.
type QuotationDetailData struct {
	Doc    services.QuotationDocument
	Fields []services.DisplayField

	EditURL  string
	PDFURL   string
	EmailURL string
	BackURL  string
}

// QuotationDetailPage renders the detail view as a full page.
func QuotationDetailPage(data QuotationDetailData, header HeaderData) templ.Component {
	return Page("Quotation "+data.Doc.ID, header, QuotationDetailContent(data))
}

const emailScript = `
async function shareQuotation(btn) {
  var out = document.getElementById("email-instruction");
  var canCopy = !!(navigator.clipboard && window.ClipboardItem);
  var res = await fetch(btn.dataset.url + "?clipboard=" + (canCopy ? "1" : "0"));
  if (!res.ok) { out.textContent = "The email could not be prepared."; return; }
  var d = await res.json();
  var copied = false;
  if (canCopy) {
    try {
      await navigator.clipboard.write([new ClipboardItem({
        "text/html": new Blob([d.html], {type: "text/html"}),
        "text/plain": new Blob([d.text], {type: "text/plain"})
      })]);
      copied = true;
    } catch (e) {}
  }
  window.location.href = d.mailto;
  out.textContent = copied ? d.instruction : d.fallbackInstruction;
}`

// QuotationDetailContent renders the detail panels.
func QuotationDetailContent(data QuotationDetailData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		doc := data.Doc

		h.raw(`<section id="quotation-detail">`)
		h.raw(`<div class="actions">`)
		if data.BackURL != "" {
			h.printf(`<a href="%s">Back to list</a>`, href(data.BackURL))
		}
		if data.EditURL != "" {
			h.printf(`<button hx-get="%s" hx-target="#quotation-detail" hx-swap="outerHTML" hx-push-url="true">Edit</button>`, href(data.EditURL))
		}
		if data.PDFURL != "" {
			h.printf(`<a href="%s">Download PDF</a>`, href(data.PDFURL))
		}
		if data.EmailURL != "" {
			h.printf(`<button type="button" data-url="%s" onclick="shareQuotation(this)">Email</button>`, href(data.EmailURL))
		}
		h.raw(`</div>`)
		h.raw(`<p id="email-instruction" class="muted"></p>`)

		h.raw(`<div class="panel">`)
		h.printf(`<h2>%s</h2>`, esc(doc.ID))
		h.raw(`<div class="grid">`)
		detailPair(h, "Segment", doc.SegmentLabel())
		detailPair(h, "Date", doc.CreatedDate)
		if doc.Period != "" {
			detailPair(h, "Period", doc.Period)
		}
		detailPair(h, "Prepared By", joinNonEmpty(doc.CreatedBy, doc.CreatedByLocation))
		h.raw(`</div></div>`)

		if doc.Customer != "" || doc.Consignee != "" {
			h.raw(`<div class="panel grid">`)
			h.printf(`<div><h3>Customer</h3><p>%s</p></div>`, multiline(orNA(doc.Customer)))
			h.printf(`<div><h3>Consignee</h3><p>%s</p></div>`, multiline(orNA(doc.Consignee)))
			h.raw(`</div>`)
		}

		if len(data.Fields) > 0 {
			h.raw(`<div class="panel"><h3>Shipment Details</h3><div class="grid">`)
			for _, f := range data.Fields {
				detailPair(h, f.Label, f.Value)
			}
			h.raw(`</div></div>`)
		}

		for _, s := range doc.Charges {
			h.render(chargePanel(s))
		}

		if doc.Remarks != "" {
			h.printf(`<div class="panel"><h3>Remarks</h3><p>%s</p></div>`, multiline(doc.Remarks))
		}

		if len(doc.Terms) > 0 {
			h.raw(`<div class="panel"><h3>Terms &amp; Conditions</h3><ol>`)
			for _, t := range doc.Terms {
				h.printf(`<li>%s</li>`, esc(t))
			}
			h.raw(`</ol></div>`)
		}

		h.raw(`</section>`)
		h.printf(`<script>%s</script>`, emailScript)
		return h.err
	})
}

func detailPair(h *htmlWriter, label, value string) {
	h.printf(`<div><strong>%s:</strong> %s</div>`, esc(label), esc(value))
}

func chargePanel(s services.ChargeSection) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.printf(`<div class="panel"><h3>%s</h3>`, esc(s.Title))
		h.raw(`<table><thead><tr><th>#</th><th>Charges</th><th>Currency</th><th>Amount</th><th>Unit</th></tr></thead><tbody>`)
		for _, l := range s.Lines {
			h.printf(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				l.SINo, esc(l.Description), esc(l.Currency), esc(l.Amount), esc(l.Unit))
		}
		h.raw(`</tbody>`)
		if len(s.Totals) > 0 {
			h.printf(`<tfoot><tr><td colspan="3"><strong>Total</strong></td><td colspan="2"><strong>%s</strong></td></tr></tfoot>`,
				esc(services.FormatTotals(s.Totals)))
		}
		h.raw(`</table></div>`)
		return h.err
	})
}

func orNA(s string) string {
	if s == "" {
		return services.NotAvailable
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return orNA(out)
}
