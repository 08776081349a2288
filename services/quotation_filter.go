package services

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Scope selects whose quotations an admin sees. Non-admins always see
// their own.
type Scope string

const (
	ScopeMine Scope = "my"
	ScopeAll  Scope = "all"
)

// SessionUser is the signed-in user as far as the dashboard cares. A nil
// *SessionUser is an anonymous visitor.
type SessionUser struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

// IsAdmin reports whether the user has the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && strings.EqualFold(strings.TrimSpace(u.Role), "admin")
}

// DisplayName returns the full name, else the username.
func (u *SessionUser) DisplayName() string {
	if u == nil {
		return ""
	}
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Username
}

// Filters are the list filters. Zero values disable a filter, except
// Scope where anything but ScopeAll restricts to the user's own quotations.
type Filters struct {
	TodayOnly bool
	Scope     Scope
	Location  string
	Year      int
	Month     string
}

// DefaultFilters returns the filters a user starts with: admins see every
// quotation, everyone else sees their own.
func DefaultFilters(user *SessionUser) Filters {
	if user.IsAdmin() {
		return Filters{Scope: ScopeAll}
	}
	return Filters{Scope: ScopeMine}
}

// ParseFilters reads filters from query values. Unknown locations and
// months are dropped, as is an unparseable year.
func ParseFilters(v url.Values, user *SessionUser) Filters {
	f := DefaultFilters(user)

	switch strings.ToLower(strings.TrimSpace(v.Get("today"))) {
	case "1", "true", "on", "yes":
		f.TodayOnly = true
	}

	switch Scope(strings.ToLower(strings.TrimSpace(v.Get("scope")))) {
	case ScopeAll:
		f.Scope = ScopeAll
	case ScopeMine:
		f.Scope = ScopeMine
	}

	if loc := strings.TrimSpace(v.Get("location")); IsLocation(loc) {
		f.Location = loc
	}

	if y, err := strconv.Atoi(strings.TrimSpace(v.Get("year"))); err == nil && y > 0 {
		f.Year = y
	}

	if m := strings.TrimSpace(v.Get("month")); m != "" {
		if _, ok := MonthByName(m); ok {
			f.Month = m
		}
	}
	return f
}

// Query encodes the filters back into query values.
func (f Filters) Query() url.Values {
	v := url.Values{}
	if f.TodayOnly {
		v.Set("today", "1")
	}
	if f.Scope != "" {
		v.Set("scope", string(f.Scope))
	}
	if f.Location != "" && f.Location != LocationAll {
		v.Set("location", f.Location)
	}
	if f.Year > 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	if f.Month != "" {
		v.Set("month", f.Month)
	}
	return v
}

// VisibleQuotations applies the filters and sorts the result newest
// first. The input slice is not modified.
func VisibleQuotations(all []Quotation, f Filters, user *SessionUser, now time.Time) []Quotation {
	restrictToOwn := !user.IsAdmin() || f.Scope != ScopeAll

	var month time.Month
	if f.Month != "" {
		month, _ = MonthByName(f.Month)
	}
	today := now.Local().Format("2006-01-02")

	visible := make([]Quotation, 0, len(all))
	for _, q := range all {
		if restrictToOwn && !OwnedBy(q.CreatedBy, user) {
			continue
		}
		if f.Location != "" && f.Location != LocationAll && q.CreatedByLocation != f.Location {
			continue
		}

		if f.TodayOnly || f.Year > 0 || month != 0 {
			created, ok := q.CreatedAt()
			if !ok {
				continue
			}
			if f.TodayOnly && created.Format("2006-01-02") != today {
				continue
			}
			if f.Year > 0 && created.Year() != f.Year {
				continue
			}
			if month != 0 && created.Month() != month {
				continue
			}
		}
		visible = append(visible, q)
	}

	SortNewestFirst(visible)
	return visible
}

// OwnedBy reports whether createdBy names the user: it equals or contains
// the username or full name, ignoring case. Blank names never match.
func OwnedBy(createdBy string, user *SessionUser) bool {
	if user == nil {
		return false
	}
	creator := strings.ToLower(strings.TrimSpace(createdBy))
	if creator == "" {
		return false
	}
	for _, name := range []string{user.Username, user.FullName} {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if creator == name || strings.Contains(creator, name) {
			return true
		}
	}
	return false
}

// SortNewestFirst orders quotations by creation date, newest first.
// Undated quotations go last, keeping their relative order.
func SortNewestFirst(list []Quotation) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[int]keyed, len(list))
	idx := make([]int, len(list))
	for i := range list {
		idx[i] = i
		t, ok := list[i].CreatedAt()
		keys[i] = keyed{t, ok}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		return ka.t.After(kb.t)
	})
	sorted := make([]Quotation, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}
	copy(list, sorted)
}
