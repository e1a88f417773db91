/*
recurrence.go - Yearly recurrence arithmetic

PURPOSE:
  The one place with non-trivial date semantics: resolving the next yearly
  occurrence of a (month, day) anchor, counting days until it, window
  membership, elapsed years of service, and milestone classification.

ANCHOR SEMANTICS:
  An anchor is a stored date whose (month, day) recurs every year. For
  birthdays the stored year is the birth year and is ignored for
  recurrence; for start dates the year is the basis of elapsed-years.

FEB 29 POLICY:
  A Feb 29 anchor resolving into a non-leap year substitutes Feb 28 for
  that year. The occurrence is never skipped and no error is produced.

SEE ALSO:
  - date.go: The Date type
  - events/evaluator.go: Consumes these primitives over the personnel set
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// OCCURRENCE RESOLUTION
// =============================================================================

// occurrenceIn places the anchor's (month, day) in the given year,
// substituting Feb 28 for Feb 29 in non-leap years.
func occurrenceIn(year int, anchor Date) Date {
	day := anchor.Day()
	if anchor.Month() == time.February && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return NewDate(year, anchor.Month(), day)
}

// NextOccurrence returns the next occurrence of the anchor on or after ref.
// If this year's occurrence has already passed, resolves into next year.
func NextOccurrence(anchor, ref Date) Date {
	candidate := occurrenceIn(ref.Year(), anchor)
	if candidate.Before(ref) {
		candidate = occurrenceIn(ref.Year()+1, anchor)
	}
	return candidate
}

// DaysUntil returns the day count from ref to the anchor's next occurrence.
// Always in [0, 366]: 0 when the occurrence is today, at most a full leap
// year when it just passed.
func DaysUntil(anchor, ref Date) int {
	return DaysBetween(ref, NextOccurrence(anchor, ref))
}

// IsWithinWindow reports whether the anchor's next occurrence falls within
// the inclusive window [0, windowDays] from ref. A window of 0 matches only
// same-day; a negative window matches nothing.
func IsWithinWindow(anchor Date, windowDays int, ref Date) bool {
	if windowDays < 0 {
		return false
	}
	return DaysUntil(anchor, ref) <= windowDays
}

// SameMonthDay reports whether two dates share month and day, ignoring year.
func SameMonthDay(a, b Date) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// =============================================================================
// ELAPSED YEARS / MILESTONES
// =============================================================================

// ElapsedYears returns whole years from the anchor to ref, decremented by
// one if ref has not yet reached the anchor's (month, day) this year.
// Returns 0 for anchors less than a year in the past. Not clamped: a
// future-dated anchor yields a negative count, which callers must reject.
func ElapsedYears(anchor, ref Date) int {
	years := ref.Year() - anchor.Year()
	if ref.Month() < anchor.Month() ||
		(ref.Month() == anchor.Month() && ref.Day() < anchor.Day()) {
		years--
	}
	return years
}

// IsMilestoneYear reports whether a year count is a notification-worthy
// milestone: the first year, or any positive multiple of five.
func IsMilestoneYear(years int) bool {
	return years == 1 || (years > 0 && years%5 == 0)
}

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// FormatOrdinal renders a date for greeting text, e.g. "August 15th".
// Days 11-13 always take "th"; otherwise the suffix follows the last digit.
func FormatOrdinal(d Date) string {
	day := d.Day()

	suffix := "th"
	if day < 11 || day > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%s %d%s", d.Month().String(), day, suffix)
}
