/*
message.go - Subject and HTML body construction

PURPOSE:
  Renders the outgoing email. Subjects are templates with {name} and, for
  anniversaries, {years} placeholders. Bodies are self-contained HTML with
  the greeting text and an optional card image reference.
*/
package notify

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// SubjectTemplates holds the configurable subject lines.
type SubjectTemplates struct {
	Birthday    string // {name}
	Anniversary string // {name}, {years}
}

// DefaultSubjects mirrors the configuration defaults.
func DefaultSubjects() SubjectTemplates {
	return SubjectTemplates{
		Birthday:    "Happy Birthday, {name}!",
		Anniversary: "Congratulations on your {years} Year Anniversary, {name}!",
	}
}

// RenderBirthdaySubject substitutes {name}.
func (t SubjectTemplates) RenderBirthdaySubject(name string) string {
	return strings.ReplaceAll(t.Birthday, "{name}", name)
}

// RenderAnniversarySubject substitutes {name} and {years}.
func (t SubjectTemplates) RenderAnniversarySubject(name string, years int) string {
	s := strings.ReplaceAll(t.Anniversary, "{name}", name)
	return strings.ReplaceAll(s, "{years}", strconv.Itoa(years))
}

// =============================================================================
// HTML BODIES
// =============================================================================

// BirthdayBody renders the HTML email body for a birthday.
func BirthdayBody(displayName, greeting, imageRef string) string {
	header := fmt.Sprintf("Happy Birthday, %s! 🎂", html.EscapeString(displayName))
	return emailBody(header, "#f8f9fa", "#0066cc", greeting, imageRef, "Birthday Card")
}

// AnniversaryBody renders the HTML email body for an anniversary. The
// header emoji follows the milestone bucket.
func AnniversaryBody(greeting, imageRef string, years int) string {
	var emoji string
	switch {
	case years == 1:
		emoji = "🎉"
	case years <= 5:
		emoji = "🌟"
	case years <= 10:
		emoji = "🏆"
	default:
		emoji = "🏅"
	}

	header := fmt.Sprintf("Congratulations on %d Years! %s", years, emoji)
	return emailBody(header, "#f0f7ff", "#003366", greeting, imageRef, "Anniversary Card")
}

func emailBody(header, headerBG, headerColor, greeting, imageRef, imageAlt string) string {
	var b strings.Builder

	b.WriteString(`<html><body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<div style="background-color: %s; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">`, headerBG)
	fmt.Fprintf(&b, `<h1 style="color: %s;">%s</h1>`, headerColor, header)
	b.WriteString(`</div>`)
	b.WriteString(`<div style="padding: 20px; background-color: #ffffff; border-radius: 0 0 8px 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">`)
	fmt.Fprintf(&b, `<p style="font-size: 16px; line-height: 1.5; color: #333333;">%s</p>`, html.EscapeString(greeting))

	if imageRef != "" {
		b.WriteString(`<div style="text-align: center; margin: 20px 0;">`)
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="max-width: 100%%; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.2);">`,
			html.EscapeString(imageRef), imageAlt)
		b.WriteString(`</div>`)
	}

	b.WriteString(`<p style="font-size: 14px; margin-top: 30px; color: #666666;">`)
	b.WriteString(`This message was automatically generated by the Office Cheer system.`)
	b.WriteString(`</p></div></body></html>`)

	return b.String()
}
