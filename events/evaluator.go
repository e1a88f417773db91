/*
evaluator.go - Event window evaluation over the personnel roster

PURPOSE:
  Answers the four questions the daily run needs: whose birthday is today,
  whose birthday is coming up within N days, and the same for milestone
  work anniversaries. Reads the full record set from the store on every
  call and filters in memory - no server-side date filtering, no cached
  state between calls. Acceptable at personnel-roster scale.

ANNIVERSARY YEARS:
  Years of service are computed as of the occurrence being matched, not as
  of the evaluation date. Near the Dec 31 / Jan 1 boundary an anniversary
  resolving into next calendar year therefore counts next year's total,
  so a 4-years-11-months employee whose fifth anniversary falls in early
  January is correctly reported as a 5-year milestone.

FAILURE SEMANTICS:
  A record with a missing or zeroed anchor is skipped with a logged
  warning. One bad record never aborts evaluation of the rest.

SEE ALSO:
  - calendar/recurrence.go: The arithmetic primitives
  - notify/orchestrator.go: Consumes evaluation results
*/
package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/people"
)

// =============================================================================
// EVALUATOR
// =============================================================================

// Anniversary pairs a person with the years of service being celebrated.
type Anniversary struct {
	Person people.Person
	Years  int
}

// Evaluator answers today/upcoming event queries over the personnel store.
type Evaluator struct {
	store people.Store
	log   zerolog.Logger

	// Now supplies "today"; overridable for tests. Defaults to calendar.Today.
	Now func() calendar.Date
}

// NewEvaluator creates an evaluator over the given store.
func NewEvaluator(store people.Store, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		store: store,
		log:   log.With().Str("component", "events").Logger(),
		Now:   calendar.Today,
	}
}

// =============================================================================
// UPCOMING QUERIES
// =============================================================================

// UpcomingBirthdays returns every person whose birthday falls within the
// next windowDays (inclusive, today counts). No milestone filtering.
func (e *Evaluator) UpcomingBirthdays(ctx context.Context, windowDays int) ([]people.Person, error) {
	roster, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today := e.Now()

	var result []people.Person
	for _, p := range roster {
		if !e.usable(p, p.Birthday, "birthday") {
			continue
		}
		if calendar.IsWithinWindow(p.Birthday, windowDays, today) {
			result = append(result, p)
		}
	}

	e.log.Info().Int("window_days", windowDays).Int("found", len(result)).
		Msg("checked upcoming birthdays")
	return result, nil
}

// UpcomingAnniversaries returns (person, years) pairs whose work anniversary
// falls within the next windowDays AND marks a milestone year. Years are
// counted as of the matched occurrence date.
func (e *Evaluator) UpcomingAnniversaries(ctx context.Context, windowDays int) ([]Anniversary, error) {
	roster, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today := e.Now()

	var result []Anniversary
	for _, p := range roster {
		if !e.usable(p, p.StartDate, "start_date") {
			continue
		}
		if !calendar.IsWithinWindow(p.StartDate, windowDays, today) {
			continue
		}
		occurrence := calendar.NextOccurrence(p.StartDate, today)
		years := occurrence.Year() - p.StartDate.Year()
		if calendar.IsMilestoneYear(years) {
			result = append(result, Anniversary{Person: p, Years: years})
		}
	}

	e.log.Info().Int("window_days", windowDays).Int("found", len(result)).
		Msg("checked upcoming anniversaries")
	return result, nil
}

// =============================================================================
// SAME-DAY QUERIES
// =============================================================================

// TodaysBirthdays returns every person whose birthday month/day match today.
func (e *Evaluator) TodaysBirthdays(ctx context.Context) ([]people.Person, error) {
	roster, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today := e.Now()

	var result []people.Person
	for _, p := range roster {
		if !e.usable(p, p.Birthday, "birthday") {
			continue
		}
		if calendar.SameMonthDay(p.Birthday, today) {
			result = append(result, p)
		}
	}
	return result, nil
}

// TodaysAnniversaries returns milestone anniversaries falling exactly today.
func (e *Evaluator) TodaysAnniversaries(ctx context.Context) ([]Anniversary, error) {
	roster, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today := e.Now()

	var result []Anniversary
	for _, p := range roster {
		if !e.usable(p, p.StartDate, "start_date") {
			continue
		}
		if !calendar.SameMonthDay(p.StartDate, today) {
			continue
		}
		years := today.Year() - p.StartDate.Year()
		if calendar.IsMilestoneYear(years) {
			result = append(result, Anniversary{Person: p, Years: years})
		}
	}
	return result, nil
}

// =============================================================================
// COUNTDOWN HELPERS
// =============================================================================

// DaysToNextBirthday returns the day count to a person's next birthday.
func (e *Evaluator) DaysToNextBirthday(p people.Person) int {
	return calendar.DaysUntil(p.Birthday, e.Now())
}

// DaysToNextAnniversary returns the day count to a person's next anniversary.
func (e *Evaluator) DaysToNextAnniversary(p people.Person) int {
	return calendar.DaysUntil(p.StartDate, e.Now())
}

// usable reports whether the anchor is evaluable; skips and warns otherwise.
func (e *Evaluator) usable(p people.Person, anchor calendar.Date, field string) bool {
	if anchor.IsZero() {
		e.log.Warn().Str("person_id", p.ID).Str("name", p.Name).Str("field", field).
			Msg("skipping record with missing date")
		return false
	}
	return true
}
