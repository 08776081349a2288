package services

import (
	"testing"
	"time"
)

func TestLocationOptions(t *testing.T) {
	expected := []string{"Delhi", "Mumbai", "Pune", "Kolkata", "Chennai"}
	if len(LocationOptions) != len(expected) {
		t.Fatalf("expected %d locations, got %d", len(expected), len(LocationOptions))
	}
	for i, v := range expected {
		if LocationOptions[i] != v {
			t.Errorf("LocationOptions[%d] = %q, want %q", i, LocationOptions[i], v)
		}
		if !IsLocation(v) {
			t.Errorf("IsLocation(%q) = false, want true", v)
		}
	}
	if IsLocation(LocationAll) {
		t.Error("IsLocation(All) should be false")
	}
	if IsLocation("delhi") {
		t.Error("IsLocation is case-sensitive")
	}
}

func TestMonthByName(t *testing.T) {
	if len(MonthOptions) != 12 {
		t.Fatalf("expected 12 months, got %d", len(MonthOptions))
	}
	tests := []struct {
		name string
		want time.Month
		ok   bool
	}{
		{"January", time.January, true},
		{"June", time.June, true},
		{"December", time.December, true},
		{"june", 0, false},
		{"Jun", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := MonthByName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MonthByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUnitOptions(t *testing.T) {
	found := make(map[string]bool)
	for _, u := range UnitOptions {
		if u == "" {
			t.Error("UnitOptions contains empty string")
		}
		found[u] = true
	}
	for _, want := range []string{UnitPerShipment, UnitPerContainer} {
		if !found[want] {
			t.Errorf("expected unit option %q not found", want)
		}
	}
}

func TestYearOptions(t *testing.T) {
	all := []Quotation{
		{ID: "a", CreatedDate: "2024-01-01"},
		{ID: "b", CreatedDate: "2025-06-15"},
		{ID: "c", CreatedDate: "2024-11-30"},
		{ID: "d", CreatedDate: "not a date"},
		{ID: "e"},
	}
	got := YearOptions(all)
	want := []int{2025, 2024}
	if len(got) != len(want) {
		t.Fatalf("YearOptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("YearOptions[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
