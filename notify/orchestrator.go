/*
orchestrator.go - Per-record notification pipeline

PURPOSE:
  Drives each record returned by the evaluator through the notification
  steps: greeting text, card image, send. The state machine per record is

    PENDING -> GREETING_READY -> IMAGE_READY -> SENT
                                             \-> FAILED

  Greeting and image failures degrade to fallbacks (template message,
  placeholder card) rather than failing the record; only the send step
  produces FAILED. One recipient's failure never blocks the rest.

IDEMPOTENCE:
  Evaluation is idempotent per day; sending is not. Running the
  orchestrator twice the same day re-sends. There is no in-run retry:
  a multi-day window naturally re-surfaces unresolved records tomorrow.

SEE ALSO:
  - events/evaluator.go: Produces the candidate set
  - sender.go, cards/library.go, greetings/: The collaborators
*/
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/cards"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/greetings"
	"github.com/warp/office-cheer/people"
)

// =============================================================================
// OUTCOME
// =============================================================================

// Status tracks a record's progress through the pipeline.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusGreetingReady Status = "GREETING_READY"
	StatusImageReady    Status = "IMAGE_READY"
	StatusSent          Status = "SENT"
	StatusFailed        Status = "FAILED"
)

// Event type labels.
const (
	EventBirthday    = "birthday"
	EventAnniversary = "anniversary"
)

// Outcome records what happened for one recipient.
type Outcome struct {
	Person people.Person
	Event  string
	Years  int // anniversaries only
	Status Status
	Err    error
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator wires the evaluator to the outbound collaborators.
type Orchestrator struct {
	Evaluator *events.Evaluator
	Greetings greetings.Generator // optional; may be nil
	Cards     *cards.Library
	Sender    Sender
	Subjects  SubjectTemplates

	fallback greetings.Template
	log      zerolog.Logger
}

// NewOrchestrator assembles the pipeline. generator may be nil, in which
// case the deterministic template generator is used directly.
func NewOrchestrator(
	ev *events.Evaluator,
	generator greetings.Generator,
	cardLib *cards.Library,
	sender Sender,
	subjects SubjectTemplates,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		Evaluator: ev,
		Greetings: generator,
		Cards:     cardLib,
		Sender:    sender,
		Subjects:  subjects,
		log:       log.With().Str("component", "orchestrator").Logger(),
	}
}

// ProcessUpcoming notifies everyone with an event inside the lookahead
// window. This is what the daily scheduled run invokes.
func (o *Orchestrator) ProcessUpcoming(ctx context.Context, windowDays int) []Outcome {
	var outcomes []Outcome

	birthdays, err := o.Evaluator.UpcomingBirthdays(ctx, windowDays)
	if err != nil {
		o.log.Error().Err(err).Msg("listing upcoming birthdays failed")
	}
	for _, p := range birthdays {
		outcomes = append(outcomes, o.processBirthday(ctx, p))
	}

	anniversaries, err := o.Evaluator.UpcomingAnniversaries(ctx, windowDays)
	if err != nil {
		o.log.Error().Err(err).Msg("listing upcoming anniversaries failed")
	}
	for _, a := range anniversaries {
		outcomes = append(outcomes, o.processAnniversary(ctx, a))
	}

	return outcomes
}

// ProcessToday notifies only same-day events.
func (o *Orchestrator) ProcessToday(ctx context.Context) []Outcome {
	var outcomes []Outcome

	birthdays, err := o.Evaluator.TodaysBirthdays(ctx)
	if err != nil {
		o.log.Error().Err(err).Msg("listing today's birthdays failed")
	}
	for _, p := range birthdays {
		outcomes = append(outcomes, o.processBirthday(ctx, p))
	}

	anniversaries, err := o.Evaluator.TodaysAnniversaries(ctx)
	if err != nil {
		o.log.Error().Err(err).Msg("listing today's anniversaries failed")
	}
	for _, a := range anniversaries {
		outcomes = append(outcomes, o.processAnniversary(ctx, a))
	}

	return outcomes
}

// =============================================================================
// PER-RECORD PIPELINE
// =============================================================================

func (o *Orchestrator) processBirthday(ctx context.Context, p people.Person) Outcome {
	out := Outcome{Person: p, Event: EventBirthday, Status: StatusPending}

	greeting := o.greet(ctx, p, 0)
	out.Status = StatusGreetingReady

	imageRef := o.Cards.BirthdayCard(ctx, p)
	out.Status = StatusImageReady

	subject := o.Subjects.RenderBirthdaySubject(p.DisplayName())
	body := BirthdayBody(p.DisplayName(), greeting, imageRef)

	return o.send(ctx, out, subject, body)
}

func (o *Orchestrator) processAnniversary(ctx context.Context, a events.Anniversary) Outcome {
	out := Outcome{Person: a.Person, Event: EventAnniversary, Years: a.Years, Status: StatusPending}

	greeting := o.greet(ctx, a.Person, a.Years)
	out.Status = StatusGreetingReady

	imageRef := o.Cards.AnniversaryCard(ctx, a.Person, a.Years)
	out.Status = StatusImageReady

	subject := o.Subjects.RenderAnniversarySubject(a.Person.DisplayName(), a.Years)
	body := AnniversaryBody(greeting, imageRef, a.Years)

	return o.send(ctx, out, subject, body)
}

// greet asks the configured generator, degrading to the template on any
// error. years == 0 means birthday.
func (o *Orchestrator) greet(ctx context.Context, p people.Person, years int) string {
	gen := o.Greetings
	if gen == nil {
		gen = o.fallback
	}

	var text string
	var err error
	if years > 0 {
		text, err = gen.Anniversary(ctx, p, years)
	} else {
		text, err = gen.Birthday(ctx, p)
	}
	if err == nil {
		return text
	}

	o.log.Warn().Err(err).Str("person_id", p.ID).
		Msg("greeting generation failed, falling back to template")
	greetingFallbacks.Inc()

	if years > 0 {
		text, _ = o.fallback.Anniversary(ctx, p, years)
	} else {
		text, _ = o.fallback.Birthday(ctx, p)
	}
	return text
}

func (o *Orchestrator) send(ctx context.Context, out Outcome, subject, body string) Outcome {
	if err := o.Sender.Send(ctx, out.Person.Email, subject, body); err != nil {
		o.log.Error().Err(err).
			Str("person_id", out.Person.ID).
			Str("recipient", out.Person.Email).
			Str("event", out.Event).
			Msg("notification send failed")
		notificationsFailed.WithLabelValues(out.Event).Inc()
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	o.log.Info().
		Str("person_id", out.Person.ID).
		Str("recipient", out.Person.Email).
		Str("event", out.Event).
		Int("years", out.Years).
		Msg("notification sent")
	notificationsSent.WithLabelValues(out.Event).Inc()
	out.Status = StatusSent
	return out
}
