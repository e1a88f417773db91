/*
sample.go - Synthetic roster generation for demos and dev databases

PURPOSE:
  Produces plausible personnel records so a fresh database has something to
  show. Generation is deterministic (a pure function of the index and, for
  event samples, the reference date), so seeding twice yields the same
  roster and tests can assert on the output.

SEE ALSO:
  - cmd/cheer/main.go: The seed subcommand
*/
package people

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/office-cheer/calendar"
)

// =============================================================================
// NAME AND INTEREST TABLES
// =============================================================================

var sampleFirstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
	"Lisa", "Matthew", "Nancy", "Anthony", "Margaret", "Steven", "Emily",
}

var sampleLastNames = []string{
	"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
	"Harris", "Martin", "Garcia", "Martinez", "Robinson", "Clark", "Lewis",
	"Walker", "Hall", "Allen", "Young", "King", "Wright", "Scott",
}

var sampleInterests = []string{
	"photography", "hiking", "cooking", "gardening", "reading", "traveling",
	"painting", "music", "dancing", "writing", "fishing", "gaming",
	"cycling", "running", "swimming", "technology", "history", "coffee",
	"coding", "design", "astronomy", "woodworking", "camping", "sailing",
}

// =============================================================================
// GENERATION
// =============================================================================

// SampleRoster returns count synthetic records. Emails carry the record
// index so uniqueness holds at any count.
func SampleRoster(count int) []Person {
	roster := make([]Person, 0, count)
	for i := 0; i < count; i++ {
		first := sampleFirstNames[i%len(sampleFirstNames)]
		last := sampleLastNames[(i*7+3)%len(sampleLastNames)]

		p := Person{
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Birthday: calendar.NewDate(
				1960+(i*13)%40,
				time.Month(1+(i*5)%12),
				1+(i*11)%28,
			),
			StartDate: calendar.NewDate(
				2000+(i*3)%24,
				time.Month(1+(i*7)%12),
				1+(i*17)%28,
			),
			Interests: pickInterests(i),
		}
		// Roughly a third of people go by a short form, like real rosters.
		if i%3 == 0 && len(first) > 3 {
			p.Alias = first[:3]
		}
		roster = append(roster, p)
	}
	return roster
}

// UpcomingEventSamples returns records guaranteed to produce events within
// the next 14 days of the given date: a few birthdays and a few milestone
// anniversaries. Useful for demoing the upcoming and check commands.
func UpcomingEventSamples(today calendar.Date) []Person {
	var roster []Person

	for i, daysAhead := range []int{2, 6, 11} {
		occ := today.AddDays(daysAhead)
		first := sampleFirstNames[(i*9+1)%len(sampleFirstNames)]
		last := sampleLastNames[(i*11+5)%len(sampleLastNames)]
		roster = append(roster, Person{
			Name:      fmt.Sprintf("%s %s (birthday in %d days)", first, last, daysAhead),
			Email:     fmt.Sprintf("%s.%s.bday%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Birthday:  calendar.NewDate(1970+i*6, occ.Month(), occ.Day()),
			StartDate: calendar.NewDate(today.Year()-3-i, time.March, 1+i*9),
			Interests: pickInterests(i),
		})
	}

	for i, milestone := range []struct{ daysAhead, years int }{
		{3, 1}, {8, 5}, {13, 10},
	} {
		occ := today.AddDays(milestone.daysAhead)
		first := sampleFirstNames[(i*15+2)%len(sampleFirstNames)]
		last := sampleLastNames[(i*13+7)%len(sampleLastNames)]
		roster = append(roster, Person{
			Name: fmt.Sprintf("%s %s (%d-year anniversary in %d days)",
				first, last, milestone.years, milestone.daysAhead),
			Email:     fmt.Sprintf("%s.%s.anniv%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Birthday:  calendar.NewDate(1965+i*7, time.Month(1+i*4), 5+i*8),
			StartDate: calendar.NewDate(occ.Year()-milestone.years, occ.Month(), occ.Day()),
			Interests: pickInterests(i + 3),
		})
	}

	return roster
}

// pickInterests selects 2-5 interests starting at an index-derived offset.
func pickInterests(i int) []string {
	n := 2 + i%4
	out := make([]string, 0, n)
	for j := 0; j < n; j++ {
		out = append(out, sampleInterests[(i*5+j)%len(sampleInterests)])
	}
	return out
}
