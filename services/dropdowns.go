package services

import (
	"sort"
	"time"
)

// LocationAll disables the location filter.
const LocationAll = "All"

// LocationOptions returns the branch locations a quotation can be created at.
var LocationOptions = []string{
	"Delhi",
	"Mumbai",
	"Pune",
	"Kolkata",
	"Chennai",
}

// MonthOptions returns the English month names in calendar order.
var MonthOptions = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// SegmentOptions returns the segment labels offered when editing.
var SegmentOptions = []string{
	"Air Export",
	"Air Import",
	"Sea FCL Export",
	"Sea FCL Import",
	"Sea LCL Export",
	"Sea LCL Import",
	"Break Bulk",
	"Service Job",
}

// CurrencyOptions returns the currencies offered on charge rows.
var CurrencyOptions = []string{"USD", "INR", "EUR", "GBP", "AED", "SGD", "CNY"}

// UnitOptions returns the charge units offered on charge rows.
var UnitOptions = []string{
	UnitPerShipment,
	UnitPerContainer,
	"Per KG",
	"Per CBM",
	"Per BL",
	"Per Set",
}

// IsLocation reports whether s is one of LocationOptions.
func IsLocation(s string) bool {
	for _, l := range LocationOptions {
		if l == s {
			return true
		}
	}
	return false
}

// MonthByName returns the month for an English month name.
func MonthByName(name string) (time.Month, bool) {
	for i, m := range MonthOptions {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// YearOptions returns the distinct creation years in the list, newest first.
func YearOptions(all []Quotation) []int {
	seen := make(map[int]bool)
	var years []int
	for _, q := range all {
		t, ok := q.CreatedAt()
		if !ok || seen[t.Year()] {
			continue
		}
		seen[t.Year()] = true
		years = append(years, t.Year())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
