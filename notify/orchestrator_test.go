package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/cards"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/greetings"
	"github.com/warp/office-cheer/notify"
	"github.com/warp/office-cheer/people"
	memstore "github.com/warp/office-cheer/people/store"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type recordingSender struct {
	failFor map[string]bool // recipient -> fail
	sent    []sentMail
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

func (s *recordingSender) Send(_ context.Context, recipient, subject, body string) error {
	if s.failFor[recipient] {
		return errors.New("relay rejected message")
	}
	s.sent = append(s.sent, sentMail{recipient, subject, body})
	return nil
}

type failingGenerator struct{}

func (failingGenerator) Birthday(context.Context, people.Person) (string, error) {
	return "", errors.New("generator unavailable")
}

func (failingGenerator) Anniversary(context.Context, people.Person, int) (string, error) {
	return "", errors.New("generator unavailable")
}

// =============================================================================
// SETUP
// =============================================================================

func fixedToday() calendar.Date {
	return calendar.NewDate(2023, time.June, 1)
}

func seedRoster(t *testing.T) people.Store {
	t.Helper()
	st := memstore.NewMemory()
	add := func(p people.Person) {
		t.Helper()
		_, err := st.Add(context.Background(), p)
		require.NoError(t, err)
	}

	// Birthday today; alias set.
	add(people.Person{
		Name: "John Doe", Alias: "Johnny", Email: "john@example.com",
		Birthday:  calendar.NewDate(1980, time.June, 1),
		StartDate: calendar.NewDate(2020, time.March, 10),
		Interests: []string{"hiking", "photography", "cooking"},
	})
	// Five-year anniversary today.
	add(people.Person{
		Name: "Jane Smith", Email: "jane@example.com",
		Birthday:  calendar.NewDate(1985, time.August, 22),
		StartDate: calendar.NewDate(2018, time.June, 1),
	})
	// Nothing today.
	add(people.Person{
		Name: "Mike Johnson", Email: "mike@example.com",
		Birthday:  calendar.NewDate(1975, time.February, 28),
		StartDate: calendar.NewDate(2021, time.September, 15),
	})
	return st
}

func newOrchestrator(t *testing.T, st people.Store, gen greetings.Generator, sender notify.Sender) *notify.Orchestrator {
	t.Helper()
	ev := events.NewEvaluator(st, zerolog.Nop())
	ev.Now = fixedToday
	lib := cards.NewLibrary(nil, t.TempDir(), zerolog.Nop()) // non-live: placeholders
	return notify.NewOrchestrator(ev, gen, lib, sender, notify.DefaultSubjects(), zerolog.Nop())
}

// =============================================================================
// PIPELINE TESTS
// =============================================================================

func TestProcessToday_SendsBirthdayAndMilestoneAnniversary(t *testing.T) {
	sender := &recordingSender{}
	o := newOrchestrator(t, seedRoster(t), nil, sender)

	outcomes := o.ProcessToday(context.Background())

	require.Len(t, outcomes, 2)
	for _, out := range outcomes {
		assert.Equal(t, notify.StatusSent, out.Status)
		assert.NoError(t, out.Err)
	}

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "john@example.com", sender.sent[0].Recipient)
	assert.Equal(t, "Happy Birthday, Johnny!", sender.sent[0].Subject, "alias replaces name")
	assert.Contains(t, sender.sent[0].Body, cards.PlaceholderBirthday)

	assert.Equal(t, "jane@example.com", sender.sent[1].Recipient)
	assert.Equal(t, "Congratulations on your 5 Year Anniversary, Jane Smith!", sender.sent[1].Subject)
	assert.Contains(t, sender.sent[1].Body, cards.PlaceholderAnniversary)
}

func TestProcessToday_GreetingFailureDegradesToTemplate(t *testing.T) {
	sender := &recordingSender{}
	o := newOrchestrator(t, seedRoster(t), failingGenerator{}, sender)

	outcomes := o.ProcessToday(context.Background())

	require.Len(t, outcomes, 2)
	for _, out := range outcomes {
		assert.Equal(t, notify.StatusSent, out.Status, "greeting failure must not fail the record")
	}
	assert.Contains(t, sender.sent[0].Body, "Happy Birthday, Johnny!")
	assert.Contains(t, sender.sent[1].Body, "5-year work anniversary")
}

func TestProcessToday_SendFailureIsolatedPerRecipient(t *testing.T) {
	sender := &recordingSender{failFor: map[string]bool{"john@example.com": true}}
	o := newOrchestrator(t, seedRoster(t), nil, sender)

	outcomes := o.ProcessToday(context.Background())

	require.Len(t, outcomes, 2)
	assert.Equal(t, notify.StatusFailed, outcomes[0].Status)
	assert.Error(t, outcomes[0].Err)
	assert.Equal(t, notify.StatusSent, outcomes[1].Status, "one failure must not block the rest")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].Recipient)
}

func TestProcessUpcoming_WindowCoversNearEvents(t *testing.T) {
	st := memstore.NewMemory()
	_, err := st.Add(context.Background(), people.Person{
		Name: "Soon", Email: "soon@example.com",
		Birthday:  calendar.NewDate(1990, time.June, 3),
		StartDate: calendar.NewDate(2019, time.November, 1),
	})
	require.NoError(t, err)

	sender := &recordingSender{}
	o := newOrchestrator(t, st, nil, sender)

	outcomes := o.ProcessUpcoming(context.Background(), 3)

	require.Len(t, outcomes, 1)
	assert.Equal(t, notify.EventBirthday, outcomes[0].Event)
	assert.Equal(t, notify.StatusSent, outcomes[0].Status)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

func TestSubjectTemplates(t *testing.T) {
	subjects := notify.SubjectTemplates{
		Birthday:    "HB {name}",
		Anniversary: "{years} years, {name}",
	}
	assert.Equal(t, "HB Ana", subjects.RenderBirthdaySubject("Ana"))
	assert.Equal(t, "10 years, Ana", subjects.RenderAnniversarySubject("Ana", 10))
}

func TestBodies_EmbedGreetingAndImage(t *testing.T) {
	body := notify.BirthdayBody("Ana", "have a great day", "cards/ana.png")
	assert.Contains(t, body, "have a great day")
	assert.Contains(t, body, `src="cards/ana.png"`)
	assert.Contains(t, body, "Happy Birthday, Ana!")

	body = notify.AnniversaryBody("well done", "", 10)
	assert.Contains(t, body, "Congratulations on 10 Years!")
	assert.False(t, strings.Contains(body, "<img"), "no image tag without a reference")
}

func TestBodies_EscapeUserText(t *testing.T) {
	body := notify.BirthdayBody("<script>", "a <b> greeting", "")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "a &lt;b&gt; greeting")
}
