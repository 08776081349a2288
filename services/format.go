package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatAmount formats a total with two decimals and the currency code.
// INR uses the Indian numbering system (1,23,45,678.90); other currencies
// use groups of three.
func FormatAmount(currency string, amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	var grouped string
	if strings.EqualFold(currency, "INR") {
		raw := fmt.Sprintf("%.2f", amount)
		intPart, decPart, _ := strings.Cut(raw, ".")
		grouped = applyIndianGrouping(intPart) + "." + decPart
	} else {
		grouped = humanize.FormatFloat("#,###.##", amount)
	}

	if negative {
		grouped = "-" + grouped
	}
	if currency == "" {
		return grouped
	}
	return currency + " " + grouped
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// FormatTotals renders per-currency totals as "USD 1,200.00 + INR 5,000.00".
func FormatTotals(totals []CurrencyTotal) string {
	parts := make([]string, 0, len(totals))
	for _, t := range totals {
		parts = append(parts, FormatAmount(t.Currency, t.Amount))
	}
	return strings.Join(parts, " + ")
}

// FormatCreatedDate renders a quotation's creation date as "02 Jan 2006",
// or NotAvailable when it is missing or unreadable.
func FormatCreatedDate(q Quotation) string {
	t, ok := q.CreatedAt()
	if !ok {
		return NotAvailable
	}
	return t.Format("02 Jan 2006")
}

// FormatRelative renders a refresh time like "12 seconds ago".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// replaceCurrencyGlyphs swaps glyphs the PDF core fonts cannot draw for
// their ASCII spelling.
func replaceCurrencyGlyphs(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs.")
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
