package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExportRow represents a single quotation in a list export.
type ExportRow struct {
	Index        int
	ID           string
	Segment      string
	Customer     string
	Route        string
	CreatedBy    string
	Location     string
	CreatedDate  string
	FreightTotal string
}

// ExportData holds all data needed for a list export.
type ExportData struct {
	Title       string
	Subtitle    string
	GeneratedAt string
	Rows        []ExportRow
}

// BuildExportData turns the visible quotations into export rows.
// The filter summary becomes the subtitle.
func BuildExportData(visible []Quotation, f Filters, user *SessionUser, now time.Time) ExportData {
	data := ExportData{
		Title:       "Quotations",
		Subtitle:    describeFilters(f, user),
		GeneratedAt: now.Format("02 Jan 2006 15:04"),
	}

	for i, q := range visible {
		freight := ""
		if s, ok := BuildChargeSection(freightChargesTitle, UnitPerContainer, q.FreightCharges); ok {
			freight = FormatTotals(s.Totals)
		}
		data.Rows = append(data.Rows, ExportRow{
			Index:        i + 1,
			ID:           q.ID,
			Segment:      strings.TrimSpace(q.Segment),
			Customer:     firstLine(q.CustomerName.String()),
			Route:        routeSummary(q),
			CreatedBy:    strings.TrimSpace(q.CreatedBy),
			Location:     strings.TrimSpace(q.CreatedByLocation),
			CreatedDate:  FormatCreatedDate(q),
			FreightTotal: freight,
		})
	}
	return data
}

// describeFilters renders the active filters as "All users | Mumbai | June 2025".
func describeFilters(f Filters, user *SessionUser) string {
	titleCaser := cases.Title(language.Und)

	var parts []string
	if user.IsAdmin() && f.Scope == ScopeAll {
		parts = append(parts, "All users")
	} else if user != nil {
		parts = append(parts, "Created by "+user.DisplayName())
	}
	if f.TodayOnly {
		parts = append(parts, "Today")
	}
	if f.Location != "" && f.Location != LocationAll {
		parts = append(parts, titleCaser.String(f.Location))
	}
	switch {
	case f.Month != "" && f.Year > 0:
		parts = append(parts, fmt.Sprintf("%s %d", f.Month, f.Year))
	case f.Month != "":
		parts = append(parts, f.Month)
	case f.Year > 0:
		parts = append(parts, fmt.Sprintf("%d", f.Year))
	}
	return strings.Join(parts, " | ")
}

// routeSummary returns "origin - destination" from whichever routing
// attributes the segment uses.
func routeSummary(q Quotation) string {
	origin := firstText(q.POL, q.POR, q.AirPortOfDeparture)
	dest := firstText(q.POD, q.FinalDestination, q.AirPortOfDestination)
	if origin == "" && dest == "" {
		return ""
	}
	return orNAString(origin) + " - " + orNAString(dest)
}

func firstText(values ...Text) string {
	for _, v := range values {
		if !v.Empty() {
			return v.String()
		}
	}
	return ""
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
