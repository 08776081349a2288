package services

import "strings"

// Branding carries the company details printed on exported documents.
type Branding struct {
	CompanyName string
	Tagline     string
	Email       string
}

// DefaultBranding is used when no configuration overrides it.
var DefaultBranding = Branding{
	CompanyName: "Door-to-Door Freight Forwarders",
	Tagline:     "Your cargo, our commitment - door to door, worldwide.",
	Email:       "quotes@doortodoor.example",
}

// QuotationDocument holds everything a renderer needs to draw a quotation.
// It is built once and painted as a detail view, a PDF or an email body.
type QuotationDocument struct {
	ID                string
	Segment           string
	Kind              SegmentKind
	Period            string
	CreatedDate       string
	CreatedBy         string
	CreatedByLocation string

	Customer  string
	Consignee string

	Fields  []FieldRow
	Charges []ChargeSection

	Remarks string
	Terms   []string
}

// BuildQuotationDocument resolves the segment-dependent field rows and the
// present charge tables of a quotation.
func BuildQuotationDocument(q Quotation) QuotationDocument {
	kind := q.Kind()

	period := ""
	if n, err := ParseQuotationNumber(q.ID); err == nil {
		period = n.Period()
	}

	var terms []string
	for _, t := range q.TermsAndConditions {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}

	return QuotationDocument{
		ID:                q.ID,
		Segment:           strings.TrimSpace(q.Segment),
		Kind:              kind,
		Period:            period,
		CreatedDate:       FormatCreatedDate(q),
		CreatedBy:         strings.TrimSpace(q.CreatedBy),
		CreatedByLocation: strings.TrimSpace(q.CreatedByLocation),
		Customer:          q.CustomerName.String(),
		Consignee:         q.ConsigneeName.String(),
		Fields:            ResolveFieldRows(kind, q),
		Charges:           ChargeSections(q),
		Remarks:           q.Remarks.String(),
		Terms:             terms,
	}
}

// SegmentLabel is the segment as written on documents, "Quotation" when
// the label is blank.
func (d QuotationDocument) SegmentLabel() string {
	if d.Segment == "" {
		return "Quotation"
	}
	return d.Segment
}

// PDFFileName returns "{segment} {id}.pdf" with path separators removed.
func (d QuotationDocument) PDFFileName() string {
	return sanitizeFilename(d.SegmentLabel()+" "+d.ID) + ".pdf"
}

// EmailSubject is the subject line used for the mail composer.
func (d QuotationDocument) EmailSubject() string {
	return "Quotation " + d.ID + " - " + d.SegmentLabel()
}

// sanitizeFilename removes characters that are unsafe for filenames.
// Spaces are kept.
func sanitizeFilename(s string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\"", "", "\n", " ", "\r", "")
	return strings.TrimSpace(r.Replace(s))
}
