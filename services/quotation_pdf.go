package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimetres (A4 portrait).
const (
	pdfPageWidth    = 210.0
	pdfLeftMargin   = 15.0
	pdfContentWidth = pdfPageWidth - 2*pdfLeftMargin
	pdfTopMargin    = 20.0
	pdfLineHeight   = 5.0
	pdfFooterY      = 280.0

	// Cursor limits. Content that would end below the limit for its
	// section starts a new page instead.
	pdfSectionLimitY   = 265.0
	pdfRemarksLimitY   = 250.0
	pdfTermsLimitY     = 240.0
	pdfTermsListLimitY = 270.0
)

var chargeColumnWidths = []float64{10, 80, 25, 35, 30}

// QuotationPDF is a rendered quotation document.
type QuotationPDF struct {
	Bytes     []byte
	FileName  string
	PageCount int
}

// GenerateQuotationPDF draws a quotation as a paginated A4 document.
func GenerateQuotationPDF(doc QuotationDocument, brand Branding) (*QuotationPDF, error) {
	out, _, err := renderQuotationPDF(doc, brand, true)
	return out, err
}

type pdfCell struct {
	Text  string
	Width float64
	Bold  bool
	Align string
}

type quotationPDFWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	y   float64

	// breaks records why each page after the first was started and
	// bottoms the cursor position each of those pages was left at.
	breaks  []string
	bottoms []float64
}

func renderQuotationPDF(doc QuotationDocument, brand Branding, compress bool) (*QuotationPDF, *quotationPDFWriter, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfLeftMargin, pdfTopMargin, pdfLeftMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.EmailSubject(), true)
	pdf.SetCreator(brand.CompanyName, true)

	w := &quotationPDFWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.AddPage()
	w.y = pdfTopMargin

	w.addHeader(doc, brand)
	w.addParties(doc)
	w.addShipmentDetails(doc)
	for _, section := range doc.Charges {
		w.addChargeTable(section)
	}
	w.addRemarks(doc)
	w.addTerms(doc)
	w.addFooters(brand)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, w, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}

	return &QuotationPDF{
		Bytes:     buf.Bytes(),
		FileName:  doc.PDFFileName(),
		PageCount: pdf.PageCount(),
	}, w, nil
}

// ensureSpace starts a new page when a block of height h would end below limit.
func (w *quotationPDFWriter) ensureSpace(h, limit float64, reason string) {
	if w.y+h <= limit {
		return
	}
	w.bottoms = append(w.bottoms, w.y)
	w.pdf.AddPage()
	w.y = pdfTopMargin
	w.breaks = append(w.breaks, reason)
}

func (w *quotationPDFWriter) setFont(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

// textHeight measures text wrapped to width in the given font.
func (w *quotationPDFWriter) textHeight(text string, width float64, style string, size float64) float64 {
	w.setFont(style, size)
	lines := w.pdf.SplitLines([]byte(w.tr(text)), width)
	n := len(lines)
	if n == 0 {
		n = 1
	}
	return float64(n) * pdfLineHeight
}

func (w *quotationPDFWriter) rowHeight(cells []pdfCell) float64 {
	h := pdfLineHeight
	for _, c := range cells {
		style := ""
		if c.Bold {
			style = "B"
		}
		if ch := w.textHeight(c.Text, c.Width-2, style, 8); ch > h {
			h = ch
		}
	}
	return h + 2
}

// drawRow draws bordered cells at the cursor and advances it.
func (w *quotationPDFWriter) drawRow(cells []pdfCell, h float64, fill bool) {
	x := pdfLeftMargin
	for _, c := range cells {
		if fill {
			w.pdf.SetFillColor(33, 37, 41)
			w.pdf.SetTextColor(255, 255, 255)
			w.pdf.Rect(x, w.y, c.Width, h, "FD")
		} else {
			w.pdf.SetTextColor(0, 0, 0)
			w.pdf.Rect(x, w.y, c.Width, h, "D")
		}

		style := ""
		if c.Bold || fill {
			style = "B"
		}
		w.setFont(style, 8)
		align := c.Align
		if align == "" {
			align = "L"
		}
		w.pdf.SetXY(x+1, w.y+1)
		w.pdf.MultiCell(c.Width-2, pdfLineHeight, w.tr(c.Text), "", align, false)
		x += c.Width
	}
	w.pdf.SetTextColor(0, 0, 0)
	w.y += h
}

func (w *quotationPDFWriter) sectionTitle(title string) {
	w.setFont("B", 10)
	w.pdf.SetTextColor(33, 37, 41)
	w.pdf.SetXY(pdfLeftMargin, w.y)
	w.pdf.CellFormat(pdfContentWidth, 7, w.tr(title), "B", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.y += 9
}

// addHeader adds the company name, the document title and the reference block.
func (w *quotationPDFWriter) addHeader(doc QuotationDocument, brand Branding) {
	w.setFont("B", 14)
	w.pdf.SetXY(pdfLeftMargin, w.y)
	w.pdf.CellFormat(pdfContentWidth/2, 8, w.tr(brand.CompanyName), "", 0, "L", false, 0, "")
	w.pdf.CellFormat(pdfContentWidth/2, 8, "QUOTATION", "", 0, "R", false, 0, "")
	w.y += 9

	w.setFont("", 8)
	w.pdf.SetTextColor(100, 100, 100)
	w.pdf.SetXY(pdfLeftMargin, w.y)
	w.pdf.CellFormat(pdfContentWidth, 5, w.tr(brand.Email), "", 0, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.y += 8

	ref := []pdfCell{
		{Text: "Quotation No", Width: 30, Bold: true},
		{Text: doc.ID, Width: 60},
		{Text: "Date", Width: 30, Bold: true},
		{Text: doc.CreatedDate, Width: 60},
	}
	w.drawRow(ref, w.rowHeight(ref), false)

	meta := []pdfCell{
		{Text: "Segment", Width: 30, Bold: true},
		{Text: doc.SegmentLabel(), Width: 60},
		{Text: "Prepared By", Width: 30, Bold: true},
		{Text: preparedBy(doc), Width: 60},
	}
	w.drawRow(meta, w.rowHeight(meta), false)
	w.y += 4
}

func preparedBy(doc QuotationDocument) string {
	by := joinNonEmpty([]string{doc.CreatedBy, doc.CreatedByLocation}, ", ")
	if by == "" {
		return NotAvailable
	}
	return by
}

// addParties adds customer and consignee side by side.
func (w *quotationPDFWriter) addParties(doc QuotationDocument) {
	if doc.Customer == "" && doc.Consignee == "" {
		return
	}
	customer := doc.Customer
	if customer == "" {
		customer = NotAvailable
	}
	consignee := doc.Consignee
	if consignee == "" {
		consignee = NotAvailable
	}

	head := []pdfCell{
		{Text: "Customer", Width: pdfContentWidth / 2},
		{Text: "Consignee", Width: pdfContentWidth / 2},
	}
	body := []pdfCell{
		{Text: customer, Width: pdfContentWidth / 2},
		{Text: consignee, Width: pdfContentWidth / 2},
	}
	headH := w.rowHeight(head)
	bodyH := w.rowHeight(body)
	w.ensureSpace(headH+bodyH, pdfSectionLimitY, "parties")
	w.drawRow(head, headH, true)
	w.drawRow(body, bodyH, false)
	w.y += 4
}

// addShipmentDetails adds the segment-dependent field rows, two pairs per row.
func (w *quotationPDFWriter) addShipmentDetails(doc QuotationDocument) {
	if len(doc.Fields) == 0 {
		return
	}
	w.ensureSpace(9+pdfLineHeight+2, pdfSectionLimitY, "shipment details")
	w.sectionTitle("Shipment Details")

	for _, r := range doc.Fields {
		cells := []pdfCell{
			{Text: r.Left.Label, Width: 35, Bold: true},
			{Text: r.Left.Value, Width: 55},
			{Text: r.Right.Label, Width: 35, Bold: true},
			{Text: r.Right.Value, Width: 55},
		}
		h := w.rowHeight(cells)
		w.ensureSpace(h, pdfSectionLimitY, "shipment details")
		w.drawRow(cells, h, false)
	}
	w.y += 4
}

func chargeHeaderCells() []pdfCell {
	return []pdfCell{
		{Text: "#", Width: chargeColumnWidths[0], Align: "C"},
		{Text: "Charges", Width: chargeColumnWidths[1]},
		{Text: "Currency", Width: chargeColumnWidths[2], Align: "C"},
		{Text: "Amount", Width: chargeColumnWidths[3], Align: "R"},
		{Text: "Unit", Width: chargeColumnWidths[4], Align: "C"},
	}
}

// addChargeTable adds one titled charge table. The header row is repeated
// when the table continues on a new page.
func (w *quotationPDFWriter) addChargeTable(section ChargeSection) {
	header := chargeHeaderCells()
	headerH := w.rowHeight(header)

	w.ensureSpace(9+headerH+pdfLineHeight+2, pdfSectionLimitY, section.Title)
	w.sectionTitle(section.Title)
	w.drawRow(header, headerH, true)

	for _, l := range section.Lines {
		cells := []pdfCell{
			{Text: fmt.Sprintf("%d", l.SINo), Width: chargeColumnWidths[0], Align: "C"},
			{Text: l.Description, Width: chargeColumnWidths[1]},
			{Text: l.Currency, Width: chargeColumnWidths[2], Align: "C"},
			{Text: l.Amount, Width: chargeColumnWidths[3], Align: "R"},
			{Text: l.Unit, Width: chargeColumnWidths[4], Align: "C"},
		}
		h := w.rowHeight(cells)
		if w.y+h > pdfSectionLimitY {
			w.ensureSpace(h, pdfSectionLimitY, section.Title)
			w.drawRow(header, headerH, true)
		}
		w.drawRow(cells, h, false)
	}

	if len(section.Totals) > 0 {
		total := []pdfCell{
			{Text: "Total", Width: chargeColumnWidths[0] + chargeColumnWidths[1] + chargeColumnWidths[2], Bold: true, Align: "R"},
			{Text: FormatTotals(section.Totals), Width: chargeColumnWidths[3] + chargeColumnWidths[4], Bold: true, Align: "R"},
		}
		h := w.rowHeight(total)
		w.ensureSpace(h, pdfSectionLimitY, section.Title)
		w.drawRow(total, h, false)
	}
	w.y += 4
}

// wrapLines splits text into lines that fit the content width.
func (w *quotationPDFWriter) wrapLines(text string, size float64) [][]byte {
	w.setFont("", size)
	lines := w.pdf.SplitLines([]byte(w.tr(text)), pdfContentWidth)
	if len(lines) == 0 {
		lines = [][]byte{nil}
	}
	return lines
}

// fitsOnPage reports whether a block of height h fits between the top
// margin and limit.
func fitsOnPage(h, limit float64) bool {
	return pdfTopMargin+h <= limit
}

// drawLines draws wrapped lines one at a time, starting a new page
// whenever the next line would end below limit.
func (w *quotationPDFWriter) drawLines(lines [][]byte, size, limit float64, reason string) {
	for _, line := range lines {
		w.ensureSpace(pdfLineHeight, limit, reason)
		w.setFont("", size)
		w.pdf.SetXY(pdfLeftMargin, w.y)
		w.pdf.CellFormat(pdfContentWidth, pdfLineHeight, string(line), "", 0, "L", false, 0, "")
		w.y += pdfLineHeight
	}
}

// addRemarks adds the free-text remarks block. A block taller than a page
// flows line by line across pages.
func (w *quotationPDFWriter) addRemarks(doc QuotationDocument) {
	if doc.Remarks == "" {
		return
	}
	lines := w.wrapLines(doc.Remarks, 9)
	h := float64(len(lines)) * pdfLineHeight
	if !fitsOnPage(9+h, pdfRemarksLimitY) {
		h = pdfLineHeight
	}
	w.ensureSpace(9+h, pdfRemarksLimitY, "remarks")
	w.sectionTitle("Remarks")

	w.drawLines(lines, 9, pdfRemarksLimitY, "remarks")
	w.y += 4
}

// addTerms adds the numbered terms list. Every entry is checked against
// the page limit on its own, so a long term can move to the next page.
func (w *quotationPDFWriter) addTerms(doc QuotationDocument) {
	if len(doc.Terms) == 0 {
		return
	}
	w.ensureSpace(9+pdfLineHeight, pdfTermsLimitY, "terms")
	w.sectionTitle("Terms & Conditions")

	for i, term := range doc.Terms {
		text := fmt.Sprintf("%d. %s", i+1, replaceCurrencyGlyphs(term))
		lines := w.wrapLines(text, 8)
		if h := float64(len(lines)) * pdfLineHeight; fitsOnPage(h, pdfTermsListLimitY) {
			w.ensureSpace(h, pdfTermsListLimitY, "terms list")
		}
		w.drawLines(lines, 8, pdfTermsListLimitY, "terms list")
		w.y++
	}
}

// addFooters writes the tagline and page number on every page once the
// page count is known.
func (w *quotationPDFWriter) addFooters(brand Branding) {
	total := w.pdf.PageCount()
	for page := 1; page <= total; page++ {
		w.pdf.SetPage(page)
		w.pdf.SetDrawColor(180, 180, 180)
		w.pdf.Line(pdfLeftMargin, pdfFooterY, pdfLeftMargin+pdfContentWidth, pdfFooterY)
		w.pdf.SetDrawColor(0, 0, 0)

		w.setFont("I", 7)
		w.pdf.SetTextColor(120, 120, 120)
		w.pdf.SetXY(pdfLeftMargin, pdfFooterY+1)
		w.pdf.CellFormat(pdfContentWidth*0.75, 5, w.tr(brand.Tagline), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(pdfContentWidth*0.25, 5, fmt.Sprintf("Page %d of %d", page, total), "", 0, "R", false, 0, "")
		w.pdf.SetTextColor(0, 0, 0)
	}
}
