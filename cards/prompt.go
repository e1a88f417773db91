/*
prompt.go - Deterministic card prompt construction

PURPOSE:
  Builds the text prompt sent to the image renderer. Prompts are a pure
  function of display name, event type, milestone year bucket, and the
  leading interest tags, so the same record always produces the same
  prompt (interest order matters; duplicates are kept as stored).

INTEREST LIMITS:
  Birthday cards take the primary interest plus up to two more.
  Anniversary cards take the primary interest plus at most one more.

SEE ALSO:
  - library.go: Feeds these prompts to the renderer
*/
package cards

import (
	"fmt"
	"strings"

	"github.com/warp/office-cheer/people"
)

// =============================================================================
// BIRTHDAY PROMPTS
// =============================================================================

// BirthdayPrompt builds the image prompt for a birthday card.
func BirthdayPrompt(p people.Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A cheerful, professional digital birthday card for %s.", p.DisplayName())

	appendInterests(&b, p.Interests, 2)

	b.WriteString(" The image is colorful but professional, suitable for a workplace" +
		" birthday card. It includes festive elements like balloons, cake, or confetti." +
		" The overall style is modern and upbeat, with 'Happy Birthday' text prominently displayed.")
	return b.String()
}

// =============================================================================
// ANNIVERSARY PROMPTS
// =============================================================================

// AnniversaryPrompt builds the image prompt for a milestone anniversary
// card. The base line and styling follow the milestone bucket: first year,
// five, decade, twenty-plus.
func AnniversaryPrompt(p people.Person, years int) string {
	name := p.DisplayName()

	var b strings.Builder
	switch {
	case years == 1:
		fmt.Fprintf(&b, "A congratulatory digital card celebrating %s's first year work anniversary.", name)
	case years == 5:
		fmt.Fprintf(&b, "An elegant digital card celebrating %s's 5-year work anniversary milestone.", name)
	case years == 10:
		fmt.Fprintf(&b, "A prestigious digital card celebrating %s's impressive decade of service.", name)
	case years >= 20:
		fmt.Fprintf(&b, "A distinguished digital card celebrating %s's remarkable %d years of dedicated service.", name, years)
	default:
		fmt.Fprintf(&b, "A professional digital card celebrating %s's %d-year work anniversary.", name, years)
	}

	appendInterests(&b, p.Interests, 1)

	switch {
	case years == 1:
		b.WriteString(" The image has a fresh, optimistic feel with bright colors." +
			" It includes a '1 Year' text prominently displayed with congratulatory elements.")
	case years <= 5:
		fmt.Fprintf(&b, " The image has a polished, professional look with vibrant colors"+
			" and a '%d Years' text prominently displayed with celebratory elements.", years)
	case years <= 10:
		fmt.Fprintf(&b, " The image has a distinguished appearance with rich colors, possibly"+
			" gold or silver accents. It includes a '%d Years' text prominently displayed"+
			" with achievement symbolism.", years)
	default:
		fmt.Fprintf(&b, " The image has a prestigious, distinguished appearance with elegant"+
			" colors and gold accents. It includes a '%d Years' text prominently displayed"+
			" with symbols of accomplishment and legacy.", years)
	}
	return b.String()
}

// appendInterests adds the primary interest plus up to maxExtra more.
func appendInterests(b *strings.Builder, interests []string, maxExtra int) {
	if len(interests) == 0 {
		return
	}
	fmt.Fprintf(b, " The design incorporates elements of %s", interests[0])

	extra := interests[1:]
	if len(extra) > maxExtra {
		extra = extra[:maxExtra]
	}
	if len(extra) > 0 {
		fmt.Fprintf(b, " along with subtle references to %s", strings.Join(extra, ", "))
	}
	b.WriteString(".")
}
