/*
Package greetings produces the personalized text embedded in notifications.

PURPOSE:
  Models greeting generation as a capability with two variants selected at
  startup: a deterministic Template generator and a Remote generator backed
  by a text-generation HTTP endpoint. The orchestrator holds a Generator
  and does not know which variant it has; when the remote variant errors,
  the orchestrator degrades to the template output instead of failing the
  notification.

SEE ALSO:
  - notify/orchestrator.go: Fallback wiring
*/
package greetings

import (
	"context"

	"github.com/warp/office-cheer/people"
)

// Generator produces greeting text for an event.
type Generator interface {
	// Birthday returns a birthday greeting for the person.
	Birthday(ctx context.Context, p people.Person) (string, error)

	// Anniversary returns a work-anniversary greeting for the given years
	// of service.
	Anniversary(ctx context.Context, p people.Person, years int) (string, error)
}
