package services

import (
	"net/url"
	"reflect"
	"testing"
	"time"
)

func ids(list []Quotation) []string {
	out := make([]string, len(list))
	for i, q := range list {
		out[i] = q.ID
	}
	return out
}

func TestVisibleQuotations_OwnershipSubstring(t *testing.T) {
	all := []Quotation{
		{ID: "A", CreatedBy: "Vikram", CreatedDate: "2025-01-03"},
		{ID: "B", CreatedBy: "vikram singh", CreatedDate: "2025-01-02"},
		{ID: "C", CreatedBy: "Ravi", CreatedDate: "2025-01-01"},
	}
	user := &SessionUser{Username: "vikram"}

	got := VisibleQuotations(all, Filters{}, user, time.Now())
	if want := []string{"A", "B"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("visible = %v, want %v", ids(got), want)
	}
}

func TestVisibleQuotations_OwnershipByFullName(t *testing.T) {
	all := []Quotation{
		{ID: "A", CreatedBy: "Priya Sharma"},
		{ID: "B", CreatedBy: "psharma"},
		{ID: "C", CreatedBy: "Ravichandran"},
	}
	user := &SessionUser{Username: "psharma", FullName: "Priya Sharma"}
	if got := ids(VisibleQuotations(all, Filters{}, user, time.Now())); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("visible = %v, want [A B]", got)
	}

	// Substring matching is kept even when it over-matches.
	ravi := &SessionUser{Username: "ravi"}
	if got := ids(VisibleQuotations(all, Filters{}, ravi, time.Now())); !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("visible = %v, want [C]", got)
	}
}

func TestVisibleQuotations_AnonymousSeesNothing(t *testing.T) {
	all := []Quotation{{ID: "A", CreatedBy: "Vikram"}, {ID: "B", CreatedBy: ""}}
	if got := VisibleQuotations(all, Filters{Scope: ScopeAll}, nil, time.Now()); len(got) != 0 {
		t.Errorf("anonymous user should see nothing, got %v", ids(got))
	}
}

func TestVisibleQuotations_BlankNamesNeverMatch(t *testing.T) {
	all := []Quotation{{ID: "A", CreatedBy: "Vikram"}, {ID: "B", CreatedBy: " "}}
	user := &SessionUser{Username: " ", FullName: ""}
	if got := VisibleQuotations(all, Filters{}, user, time.Now()); len(got) != 0 {
		t.Errorf("blank identifiers matched %v", ids(got))
	}
}

func TestVisibleQuotations_AdminScope(t *testing.T) {
	all := []Quotation{
		{ID: "A", CreatedBy: "Anita"},
		{ID: "B", CreatedBy: "Vikram"},
	}
	admin := &SessionUser{Username: "anita", Role: "admin"}

	if got := ids(VisibleQuotations(all, Filters{Scope: ScopeAll}, admin, time.Now())); len(got) != 2 {
		t.Errorf("admin with all scope should see everything, got %v", got)
	}
	if got := ids(VisibleQuotations(all, Filters{Scope: ScopeMine}, admin, time.Now())); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("admin with my scope = %v, want [A]", got)
	}

	user := &SessionUser{Username: "vikram", Role: "sales"}
	if got := ids(VisibleQuotations(all, Filters{Scope: ScopeAll}, user, time.Now())); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("non-admin cannot widen scope, got %v", got)
	}
}

func TestVisibleQuotations_SortNewestFirst(t *testing.T) {
	all := []Quotation{
		{ID: "2024", CreatedBy: "x", CreatedDate: "2024-01-01"},
		{ID: "2025", CreatedBy: "x", CreatedDate: "2025-06-15"},
		{ID: "undated", CreatedBy: "x"},
		{ID: "2023", CreatedBy: "x", CreatedDate: "2023-11-30"},
	}
	admin := &SessionUser{Username: "root", Role: "admin"}

	filters := []Filters{
		{Scope: ScopeAll},
		{Scope: ScopeAll, Location: LocationAll},
		{Scope: ScopeMine},
	}
	user := &SessionUser{Username: "x"}
	for _, f := range filters {
		got := ids(VisibleQuotations(all, f, admin, time.Now()))
		if f.Scope == ScopeMine {
			got = ids(VisibleQuotations(all, f, user, time.Now()))
		}
		want := []string{"2025", "2024", "2023", "undated"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("filters %+v: order = %v, want %v", f, got, want)
		}
	}

	if all[0].ID != "2024" {
		t.Error("input slice must not be reordered")
	}
}

func TestVisibleQuotations_Today(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)
	all := []Quotation{
		{ID: "today-morning", CreatedBy: "x", CreatedDate: "2025-06-15T08:00:00"},
		{ID: "today-date", CreatedBy: "x", CreatedDate: "2025-06-15"},
		{ID: "yesterday", CreatedBy: "x", CreatedDate: "2025-06-14T23:59:59"},
		{ID: "undated", CreatedBy: "x"},
	}
	user := &SessionUser{Username: "x"}

	got := ids(VisibleQuotations(all, Filters{TodayOnly: true}, user, now))
	want := []string{"today-morning", "today-date"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("today = %v, want %v", got, want)
	}
}

func TestVisibleQuotations_LocationYearMonth(t *testing.T) {
	all := []Quotation{
		{ID: "mum-jun25", CreatedBy: "x", CreatedByLocation: "Mumbai", CreatedDate: "2025-06-10"},
		{ID: "mum-jul25", CreatedBy: "x", CreatedByLocation: "Mumbai", CreatedDate: "2025-07-01"},
		{ID: "del-jun25", CreatedBy: "x", CreatedByLocation: "Delhi", CreatedDate: "2025-06-20"},
		{ID: "mum-jun24", CreatedBy: "x", CreatedByLocation: "Mumbai", CreatedDate: "2024-06-05"},
		{ID: "mum-lower", CreatedBy: "x", CreatedByLocation: "mumbai", CreatedDate: "2025-06-11"},
	}
	user := &SessionUser{Username: "x"}

	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"location", Filters{Location: "Mumbai"}, []string{"mum-jul25", "mum-jun25", "mum-jun24"}},
		{"location all", Filters{Location: LocationAll}, []string{"mum-jul25", "del-jun25", "mum-lower", "mum-jun25", "mum-jun24"}},
		{"year", Filters{Year: 2024}, []string{"mum-jun24"}},
		{"month", Filters{Month: "June"}, []string{"del-jun25", "mum-lower", "mum-jun25", "mum-jun24"}},
		{"all three", Filters{Location: "Mumbai", Year: 2025, Month: "June"}, []string{"mum-jun25"}},
		{"no match", Filters{Location: "Pune"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(VisibleQuotations(all, tt.f, user, time.Now()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	admin := &SessionUser{Username: "anita", Role: "Admin"}
	user := &SessionUser{Username: "vikram"}

	tests := []struct {
		name  string
		query string
		user  *SessionUser
		want  Filters
	}{
		{"admin default", "", admin, Filters{Scope: ScopeAll}},
		{"user default", "", user, Filters{Scope: ScopeMine}},
		{"anonymous default", "", nil, Filters{Scope: ScopeMine}},
		{"admin my", "scope=my", admin, Filters{Scope: ScopeMine}},
		{
			"everything",
			"today=1&scope=all&location=Pune&year=2025&month=March",
			admin,
			Filters{TodayOnly: true, Scope: ScopeAll, Location: "Pune", Year: 2025, Month: "March"},
		},
		{"invalid values dropped", "location=Goa&year=abc&month=Smarch&scope=everyone", user, Filters{Scope: ScopeMine}},
		{"location all dropped", "location=All", user, Filters{Scope: ScopeMine}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := ParseFilters(v, tt.user); got != tt.want {
				t.Errorf("ParseFilters(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilters_QueryRoundTrip(t *testing.T) {
	admin := &SessionUser{Role: "admin"}
	f := Filters{TodayOnly: true, Scope: ScopeAll, Location: "Chennai", Year: 2024, Month: "May"}
	if got := ParseFilters(f.Query(), admin); got != f {
		t.Errorf("round trip = %+v, want %+v", got, f)
	}
}

func TestSessionUser(t *testing.T) {
	var anon *SessionUser
	if anon.IsAdmin() {
		t.Error("nil user should not be admin")
	}
	if anon.DisplayName() != "" {
		t.Error("nil user should have no display name")
	}
	u := &SessionUser{Username: "vikram", FullName: "Vikram Singh", Role: "ADMIN"}
	if !u.IsAdmin() {
		t.Error("role comparison should ignore case")
	}
	if u.DisplayName() != "Vikram Singh" {
		t.Errorf("DisplayName = %q", u.DisplayName())
	}
	if (&SessionUser{Username: "vikram"}).DisplayName() != "vikram" {
		t.Error("DisplayName should fall back to username")
	}
}
