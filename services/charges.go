package services

import (
	"strconv"
	"strings"
)

const (
	DefaultCurrency        = "USD"
	DefaultAmount          = "0"
	UnitPerShipment        = "Per Shipment"
	UnitPerContainer       = "Per Container"
	originChargesTitle     = "Origin Charges"
	freightChargesTitle    = "Freight Charges"
	destinationChargeTitle = "Destination Charges"
)

// ChargeLine is a present charge row with defaults applied.
type ChargeLine struct {
	SINo        int
	Description string
	Currency    string
	Amount      string
	Unit        string
}

// CurrencyTotal is the sum of one currency's amounts within a table.
type CurrencyTotal struct {
	Currency string
	Amount   float64
}

// ChargeSection is a titled charge table ready for rendering.
type ChargeSection struct {
	Title  string
	Lines  []ChargeLine
	Totals []CurrencyTotal
}

// BuildChargeSection keeps the present rows of a charge table and fills
// in the currency, amount and unit defaults. ok is false when no row is
// present, in which case the section must be omitted.
func BuildChargeSection(title, defaultUnit string, rows []Charge) (section ChargeSection, ok bool) {
	section.Title = title
	for _, c := range rows {
		if !c.Present() {
			continue
		}
		section.Lines = append(section.Lines, ChargeLine{
			SINo:        len(section.Lines) + 1,
			Description: orNA(c.Charges),
			Currency:    textOr(c.Currency, DefaultCurrency),
			Amount:      textOr(c.Amount, DefaultAmount),
			Unit:        textOr(c.Unit, defaultUnit),
		})
	}
	if len(section.Lines) == 0 {
		return ChargeSection{}, false
	}
	section.Totals = SumByCurrency(section.Lines)
	return section, true
}

// ChargeSections returns the origin, freight and destination sections of
// a quotation in that order, skipping tables with no present rows.
func ChargeSections(q Quotation) []ChargeSection {
	tables := []struct {
		title string
		unit  string
		rows  []Charge
	}{
		{originChargesTitle, UnitPerShipment, q.OriginCharges},
		{freightChargesTitle, UnitPerContainer, q.FreightCharges},
		{destinationChargeTitle, UnitPerShipment, q.DestinationCharges},
	}

	var sections []ChargeSection
	for _, t := range tables {
		if s, ok := BuildChargeSection(t.title, t.unit, t.rows); ok {
			sections = append(sections, s)
		}
	}
	return sections
}

// SumByCurrency adds up line amounts per currency, in order of first
// appearance. Amounts that are not numbers are left out of the sum.
func SumByCurrency(lines []ChargeLine) []CurrencyTotal {
	var totals []CurrencyTotal
	index := make(map[string]int)
	for _, l := range lines {
		amount, ok := ParseAmount(l.Amount)
		if !ok {
			continue
		}
		i, seen := index[l.Currency]
		if !seen {
			i = len(totals)
			index[l.Currency] = i
			totals = append(totals, CurrencyTotal{Currency: l.Currency})
		}
		totals[i].Amount += amount
	}
	return totals
}

// ParseAmount reads a numeric-as-string amount, ignoring thousands
// separators and surrounding spaces.
func ParseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func textOr(t Text, fallback string) string {
	if t.Empty() {
		return fallback
	}
	return t.String()
}
