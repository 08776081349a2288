package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"quotationdesk/services"
)

// QuotationEditData is the edit form for one quotation.
type QuotationEditData struct {
	Quotation services.Quotation
	Errors    []services.ValidationError
	ActionURL string
	CancelURL string
}

// QuotationEditPage renders the edit form as a full page.
func QuotationEditPage(data QuotationEditData, header HeaderData) templ.Component {
	return Page("Edit "+data.Quotation.ID, header, QuotationEditContent(data))
}

// QuotationEditContent renders the form. Field errors are shown next to
// their inputs and listed above the form.
func QuotationEditContent(data QuotationEditData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		q := data.Quotation

		errs := make(map[string][]string)
		for _, e := range data.Errors {
			errs[e.Field] = append(errs[e.Field], e.Message)
		}

		h.raw(`<section id="quotation-detail">`)
		h.printf(`<form method="post" action="%s" hx-post="%s" hx-target="#quotation-detail" hx-swap="outerHTML">`,
			href(data.ActionURL), href(data.ActionURL))

		if len(data.Errors) > 0 {
			h.raw(`<div class="panel error"><strong>Please fix the following:</strong><ul>`)
			for _, e := range data.Errors {
				h.printf(`<li>%s</li>`, esc(e.Message))
			}
			h.raw(`</ul></div>`)
		}

		h.raw(`<div class="panel grid">`)
		h.printf(`<label>Quotation No <input name="id" value="%s" readonly></label>`, esc(q.ID))
		fieldErrors(h, errs["id"])

		h.raw(`<label>Segment <select name="quotationSegment">`)
		options := services.SegmentOptions
		if !contains(options, q.Segment) {
			options = append([]string{q.Segment}, options...)
		}
		for _, s := range options {
			h.printf(`<option value="%s"%s>%s</option>`, esc(s), selected(s == q.Segment), esc(orLabel(s, "Select segment")))
		}
		h.raw(`</select></label>`)
		fieldErrors(h, errs["quotationSegment"])
		h.raw(`</div>`)

		h.raw(`<div class="panel grid">`)
		for _, f := range services.EditableFields {
			if f.Multiline {
				h.printf(`<label>%s <textarea name="%s" rows="3">%s</textarea></label>`, esc(f.Label), f.Key, esc(f.Value(q)))
			} else {
				h.printf(`<label>%s <input name="%s" value="%s"></label>`, esc(f.Label), f.Key, esc(f.Value(q)))
			}
			fieldErrors(h, errs[f.Key])
		}
		h.raw(`</div>`)

		for _, t := range services.ChargeTables {
			h.render(chargeEditor(t, t.Rows(q), errs[string(t)+".amount"]))
		}

		h.raw(`<div class="panel"><label>Terms &amp; Conditions (one per line)<br>`)
		h.printf(`<textarea name="termsAndConditions" rows="6" style="width:100%%">%s</textarea></label></div>`,
			esc(strings.Join(q.TermsAndConditions, "\n")))

		h.raw(`<div class="actions"><button type="submit">Save</button>`)
		if data.CancelURL != "" {
			h.printf(`<button type="button" hx-get="%s" hx-target="#quotation-detail" hx-swap="outerHTML" hx-push-url="true">Cancel</button>`, href(data.CancelURL))
		}
		h.raw(`</div></form></section>`)
		return h.err
	})
}

// chargeEditor renders a table's rows plus one blank row for a new charge.
func chargeEditor(t services.ChargeTable, rows []services.Charge, errs []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		rows = append(append([]services.Charge(nil), rows...), services.Charge{})

		h.printf(`<div class="panel"><h3>%s</h3>`, esc(t.Title()))
		h.printf(`<input type="hidden" name="%s.count" value="%d">`, t, len(rows))
		h.raw(`<table><thead><tr><th>#</th><th>Charges</th><th>Currency</th><th>Amount</th><th>Unit</th></tr></thead><tbody>`)
		for i, r := range rows {
			h.raw(`<tr>`)
			h.printf(`<td>%d</td>`, i+1)
			h.printf(`<td><input name="%s" value="%s"></td>`, services.ChargeFieldName(t, i, "charges"), esc(r.Charges.String()))
			h.printf(`<td>%s</td>`, optionSelect(services.ChargeFieldName(t, i, "currency"), services.CurrencyOptions, r.Currency.String()))
			h.printf(`<td><input name="%s" value="%s" inputmode="decimal"></td>`, services.ChargeFieldName(t, i, "amount"), esc(r.Amount.String()))
			h.printf(`<td>%s</td>`, optionSelect(services.ChargeFieldName(t, i, "unit"), services.UnitOptions, r.Unit.String()))
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		fieldErrors(h, errs)
		h.raw(`</div>`)
		return h.err
	})
}

func optionSelect(name string, options []string, current string) string {
	var b strings.Builder
	b.WriteString(`<select name="` + esc(name) + `"><option value=""></option>`)
	if current != "" && !contains(options, current) {
		options = append([]string{current}, options...)
	}
	for _, o := range options {
		b.WriteString(`<option value="` + esc(o) + `"` + selected(o == current) + `>` + esc(o) + `</option>`)
	}
	b.WriteString(`</select>`)
	return b.String()
}

func fieldErrors(h *htmlWriter, msgs []string) {
	for _, m := range msgs {
		h.printf(`<span class="field-error">%s</span>`, esc(m))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orLabel(s, label string) string {
	if s == "" {
		return label
	}
	return s
}
