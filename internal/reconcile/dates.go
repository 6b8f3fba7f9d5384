package reconcile

import (
	"fmt"
	"strings"
	"time"

	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
)

const calendarDateLayout = "2006-01-02"

// NormalizeDateString reduces a submitted date to a bare calendar-date
// string, stripping any time-of-day or timezone suffix. Empty input stays
// empty; a non-ISO remainder is a validation error.
func NormalizeDateString(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if i := strings.IndexAny(s, "T "); i > 0 {
		s = s[:i]
	}
	if _, err := time.Parse(calendarDateLayout, s); err != nil {
		return "", domainagg.NewError(domainagg.CodeValidation, "plan.dates",
			fmt.Sprintf("malformed date %q: expected YYYY-MM-DD", raw), nil)
	}
	return s, nil
}

// ParseDate converts a submitted date to a UTC-midnight time. Empty input
// yields nil.
func ParseDate(raw string) (*time.Time, error) {
	s, err := NormalizeDateString(raw)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(calendarDateLayout, s)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, "plan.dates",
			fmt.Sprintf("malformed date %q", raw), nil)
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}

// FormatDate renders a stored date back to its calendar-date string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(calendarDateLayout)
}

// SameCalendarDate compares two optional dates on year-month-day only,
// ignoring any time or zone noise a driver may have attached.
func SameCalendarDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
