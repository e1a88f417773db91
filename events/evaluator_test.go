package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/people"
	memstore "github.com/warp/office-cheer/people/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func person(name string, birthday, startDate calendar.Date) people.Person {
	return people.Person{
		Name:      name,
		Email:     name + "@example.com",
		Birthday:  birthday,
		StartDate: startDate,
	}
}

// newEvaluator seeds a memory store and pins "today".
func newEvaluator(t *testing.T, today calendar.Date, roster ...people.Person) *events.Evaluator {
	t.Helper()
	st := memstore.NewMemory()
	for _, p := range roster {
		if _, err := st.Add(context.Background(), p); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}
	ev := events.NewEvaluator(st, zerolog.Nop())
	ev.Now = func() calendar.Date { return today }
	return ev
}

func names(roster []people.Person) []string {
	out := make([]string, len(roster))
	for i, p := range roster {
		out[i] = p.Name
	}
	return out
}

// =============================================================================
// UPCOMING BIRTHDAYS
// =============================================================================

func TestUpcomingBirthdays_WindowFiltering(t *testing.T) {
	// GIVEN: birthdays in Jan, Feb and Aug; reference date Jan 1
	// WHEN: looking 60 days ahead (Jan 1 birthday matched same-day too)
	// THEN: Jan 1 and Feb birthdays are in window, Aug is not
	ev := newEvaluator(t, date(2024, time.January, 1),
		person("jan", date(1990, time.January, 1), date(2020, time.March, 1)),
		person("feb", date(1990, time.February, 10), date(2020, time.March, 1)),
		person("aug", date(1990, time.August, 5), date(2020, time.March, 1)),
	)

	got, err := ev.UpcomingBirthdays(context.Background(), 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "jan" || got[1].Name != "feb" {
		t.Fatalf("expected [jan feb], got %v", names(got))
	}
}

func TestUpcomingBirthdays_ExcludesJanOnLaterReference(t *testing.T) {
	// A January birthday that already passed wraps to next year and lands
	// far outside a 60-day window, while April is straight ahead in range.
	ev := newEvaluator(t, date(2024, time.March, 5),
		person("jan", date(1990, time.January, 20), date(2020, time.June, 1)),
		person("feb", date(1990, time.February, 10), date(2020, time.June, 1)),
		person("apr", date(1990, time.April, 1), date(2020, time.June, 1)),
	)

	got, err := ev.UpcomingBirthdays(context.Background(), 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "apr" {
		t.Fatalf("expected [apr], got %v", names(got))
	}
}

func TestUpcomingBirthdays_ZeroWindowIsSameDayOnly(t *testing.T) {
	ev := newEvaluator(t, date(2024, time.June, 1),
		person("today", date(1990, time.June, 1), date(2020, time.June, 1)),
		person("tomorrow", date(1990, time.June, 2), date(2020, time.June, 1)),
	)

	got, err := ev.UpcomingBirthdays(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "today" {
		t.Fatalf("expected [today], got %v", names(got))
	}
}

func TestUpcomingBirthdays_PreservesInsertionOrder(t *testing.T) {
	ev := newEvaluator(t, date(2024, time.June, 1),
		person("charlie", date(1990, time.June, 3), date(2020, time.January, 1)),
		person("alice", date(1990, time.June, 2), date(2020, time.January, 1)),
		person("bob", date(1990, time.June, 4), date(2020, time.January, 1)),
	)

	got, err := ev.UpcomingBirthdays(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"charlie", "alice", "bob"}
	for i, w := range want {
		if got[i].Name != w {
			t.Fatalf("expected insertion order %v, got %v", want, names(got))
		}
	}
}

// =============================================================================
// UPCOMING ANNIVERSARIES
// =============================================================================

func TestUpcomingAnniversaries_MilestoneFiltering(t *testing.T) {
	// GIVEN: reference 2023-06-01; anniversaries within 7 days at 5, 4 and
	// 1 years of service
	ev := newEvaluator(t, date(2023, time.June, 1),
		person("five", date(1990, time.January, 1), date(2018, time.June, 3)),
		person("four", date(1990, time.January, 1), date(2019, time.June, 3)),
		person("one", date(1990, time.January, 1), date(2022, time.June, 3)),
		person("far", date(1990, time.January, 1), date(2018, time.September, 1)),
	)

	got, err := ev.UpcomingAnniversaries(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 milestone anniversaries, got %d", len(got))
	}
	if got[0].Person.Name != "five" || got[0].Years != 5 {
		t.Fatalf("expected (five, 5), got (%s, %d)", got[0].Person.Name, got[0].Years)
	}
	if got[1].Person.Name != "one" || got[1].Years != 1 {
		t.Fatalf("expected (one, 1), got (%s, %d)", got[1].Person.Name, got[1].Years)
	}
}

func TestUpcomingAnniversaries_YearRolloverCountsOccurrenceYear(t *testing.T) {
	// GIVEN: reference Dec 31 2022; a Jan 2 2018 start date
	// WHEN: the matched occurrence is Jan 2 2023
	// THEN: years must be 5 (a milestone), counted as of the occurrence,
	//       not 4 as of the evaluation date
	ev := newEvaluator(t, date(2022, time.December, 31),
		person("rollover", date(1990, time.January, 1), date(2018, time.January, 2)),
	)

	got, err := ev.UpcomingAnniversaries(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the rollover anniversary, got %d results", len(got))
	}
	if got[0].Years != 5 {
		t.Fatalf("expected 5 years as of the Jan 2 occurrence, got %d", got[0].Years)
	}
}

// =============================================================================
// SAME-DAY QUERIES
// =============================================================================

func TestTodaysBirthdays(t *testing.T) {
	ev := newEvaluator(t, date(2023, time.June, 1),
		person("match", date(1985, time.June, 1), date(2020, time.January, 1)),
		person("other", date(1985, time.June, 2), date(2020, time.January, 1)),
	)

	got, err := ev.TodaysBirthdays(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "match" {
		t.Fatalf("expected [match], got %v", names(got))
	}
}

func TestTodaysAnniversaries_MilestoneScenario(t *testing.T) {
	// GIVEN: start 2018-06-01, reference 2023-06-01 -> 5 years, milestone
	// AND: start 2018-06-02 -> 4 years tomorrow boundary, not today
	ev := newEvaluator(t, date(2023, time.June, 1),
		person("milestone", date(1990, time.January, 1), date(2018, time.June, 1)),
		person("dayshort", date(1990, time.January, 1), date(2018, time.June, 2)),
		person("nonmilestone", date(1990, time.January, 1), date(2021, time.June, 1)),
	)

	got, err := ev.TodaysAnniversaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 anniversary today, got %d", len(got))
	}
	if got[0].Person.Name != "milestone" || got[0].Years != 5 {
		t.Fatalf("expected (milestone, 5), got (%s, %d)", got[0].Person.Name, got[0].Years)
	}
}

func TestTodaysAnniversaries_DayShortBecomesEligibleNextDay(t *testing.T) {
	ev := newEvaluator(t, date(2023, time.June, 2),
		person("dayshort", date(1990, time.January, 1), date(2018, time.June, 2)),
	)

	got, err := ev.TodaysAnniversaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Years != 5 {
		t.Fatalf("expected 5-year milestone one day later, got %v", got)
	}
}

// =============================================================================
// FAILURE ISOLATION
// =============================================================================

// brokenStore returns one record with a zeroed anchor alongside good ones.
type brokenStore struct {
	people.Store
	roster []people.Person
}

func (b *brokenStore) ListAll(context.Context) ([]people.Person, error) {
	return b.roster, nil
}

func TestEvaluator_SkipsMalformedRecords(t *testing.T) {
	good := person("good", date(1990, time.June, 1), date(2020, time.June, 1))
	bad := person("bad", calendar.Date{}, calendar.Date{})

	ev := events.NewEvaluator(&brokenStore{roster: []people.Person{bad, good}}, zerolog.Nop())
	ev.Now = func() calendar.Date { return date(2023, time.June, 1) }

	got, err := ev.UpcomingBirthdays(context.Background(), 7)
	if err != nil {
		t.Fatalf("malformed record must not abort the batch: %v", err)
	}
	if len(got) != 1 || got[0].Name != "good" {
		t.Fatalf("expected only the good record, got %v", names(got))
	}
}
