package greetings

import (
	"context"
	"fmt"

	"github.com/warp/office-cheer/people"
)

// =============================================================================
// TEMPLATE GENERATOR - Deterministic fallback messages
// =============================================================================

// Template is the deterministic Generator. It never fails, which makes it
// the terminal fallback in the orchestrator's degrade chain.
type Template struct{}

var _ Generator = Template{}

func (Template) Birthday(_ context.Context, p people.Person) (string, error) {
	return fmt.Sprintf(
		"Happy Birthday, %s! "+
			"Wishing you a wonderful celebration and a fantastic year ahead. "+
			"The entire team is sending their best wishes on your special day.",
		p.DisplayName(),
	), nil
}

func (Template) Anniversary(_ context.Context, p people.Person, years int) (string, error) {
	name := p.DisplayName()
	if years == 1 {
		return fmt.Sprintf(
			"Congratulations on your first work anniversary, %s! "+
				"Thank you for your contributions during your first year with us. "+
				"We look forward to many more years together!",
			name,
		), nil
	}
	return fmt.Sprintf(
		"Congratulations on your %d-year work anniversary, %s! "+
			"Your dedication and contributions over the past %d years "+
			"have been invaluable to our team. Thank you for your continued excellence!",
		years, name, years,
	), nil
}
