/*
library.go - Card generation with placeholder fallback

PURPOSE:
  The Library is what the orchestrator talks to. It builds the prompt,
  asks the Renderer for image bytes, writes them to disk, and returns a
  reference (file path) to embed in the email. Every failure mode - no
  renderer configured (non-live mode), render error, write error - yields
  a fixed placeholder reference per event type instead of an error, so a
  card problem can never sink a notification.

SEE ALSO:
  - renderer.go: The live rendering capability
  - notify/orchestrator.go: Consumer
*/
package cards

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/people"
)

// Placeholder references returned in non-live mode or on render failure.
const (
	PlaceholderBirthday    = "placeholder_birthday.png"
	PlaceholderAnniversary = "placeholder_anniversary.png"
	PlaceholderGeneric     = "placeholder_generic.png"
)

// Rendered card dimensions.
const (
	cardWidth  = 1024
	cardHeight = 768
)

// Library generates and stores greeting card images.
type Library struct {
	renderer Renderer // nil = non-live mode, placeholders only
	dir      string
	log      zerolog.Logger

	// now stamps generated filenames; overridable for tests.
	now func() time.Time
}

// NewLibrary creates a card library writing images under dir.
// A nil renderer selects non-live mode: placeholders for everything.
func NewLibrary(renderer Renderer, dir string, log zerolog.Logger) *Library {
	return &Library{
		renderer: renderer,
		dir:      dir,
		log:      log.With().Str("component", "cards").Logger(),
		now:      time.Now,
	}
}

// BirthdayCard returns a reference to a birthday card image for p.
func (l *Library) BirthdayCard(ctx context.Context, p people.Person) string {
	return l.generate(ctx, p, "birthday", PlaceholderBirthday, BirthdayPrompt(p))
}

// AnniversaryCard returns a reference to an anniversary card image.
func (l *Library) AnniversaryCard(ctx context.Context, p people.Person, years int) string {
	event := fmt.Sprintf("anniversary_%dyr", years)
	return l.generate(ctx, p, event, PlaceholderAnniversary, AnniversaryPrompt(p, years))
}

func (l *Library) generate(ctx context.Context, p people.Person, event, placeholder, prompt string) string {
	if l.renderer == nil {
		l.log.Info().Str("person_id", p.ID).Str("event", event).
			Msg("non-live mode, using placeholder card")
		return placeholder
	}

	img, err := l.renderer.Render(ctx, prompt, cardWidth, cardHeight)
	if err != nil {
		l.log.Error().Err(err).Str("person_id", p.ID).Str("event", event).
			Msg("card render failed, using placeholder")
		return placeholder
	}

	path, err := l.save(p.ID, event, img)
	if err != nil {
		l.log.Error().Err(err).Str("person_id", p.ID).Str("event", event).
			Msg("card save failed, using placeholder")
		return placeholder
	}

	l.log.Info().Str("person_id", p.ID).Str("path", path).Msg("card generated")
	return path
}

func (l *Library) save(personID, event string, img []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s_%s.png", personID, event, l.now().Format("20060102_150405"))
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
