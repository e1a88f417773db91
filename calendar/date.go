/*
date.go - Day-granularity date type

PURPOSE:
  Provides the Date type used throughout the system. All personnel events
  (birthdays, work anniversaries) are day-granular; hours and minutes never
  matter. Date wraps time.Time pinned to midnight UTC so comparisons and
  day arithmetic are exact.

DESIGN:
  - Immutable value type; arithmetic returns new values
  - Always UTC, always midnight. Constructors normalize.
  - String() renders ISO-8601 (2006-01-02), which is also the wire and
    storage format

SEE ALSO:
  - recurrence.go: Yearly recurrence arithmetic built on Date
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity point in time
// =============================================================================

type Date struct {
	Time time.Time
}

// NewDate constructs a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// FromTime truncates an arbitrary time.Time to a Date.
func FromTime(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Parse parses an ISO-8601 date string (YYYY-MM-DD).
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return FromTime(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }

// Arithmetic
func (d Date) AddDays(n int) Date  { return FromTime(d.Time.AddDate(0, 0, n)) }
func (d Date) AddYears(n int) Date { return FromTime(d.Time.AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the whole days from one date to another.
// Negative if to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// IsLeapYear reports whether a year has a Feb 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
