// Package datekey converts calendar dates to and from the YYYY-MM-DD keys
// used to index daily logs.
package datekey

import (
	"fmt"
	"time"
)

// Layout is the canonical key layout.
const Layout = "2006-01-02"

// Format returns the key for t's calendar day in t's own location.
// Any two instants on the same local day produce the same key.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the key for the current moment reported by now.
func Today(now func() time.Time) string {
	return Format(now())
}

// Parse reads a key back into local noon of that day in loc.
func Parse(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return noon(d), nil
}

// AddDays moves t by n calendar days. The result is anchored at local noon so
// DST transitions never skip or repeat a day.
func AddDays(t time.Time, n int) time.Time {
	return noon(t).AddDate(0, 0, n)
}

// WeekStart returns local noon of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return AddDays(t, -offset)
}

func noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}
