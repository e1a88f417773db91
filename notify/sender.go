/*
sender.go - Notification delivery capability

PURPOSE:
  The Sender is the only side-effecting step that can fail a notification.
  Two variants, selected once at construction (never re-checked ad hoc):

    SMTPSender  live delivery over SMTP
    LogSender   non-live mode; logs the message and always succeeds

STDLIB NOTE:
  Delivery uses net/smtp directly; the message is small enough (one HTML
  part) that a MIME library buys nothing.

SEE ALSO:
  - message.go: Subject and body construction
  - orchestrator.go: Per-record send loop
*/
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers a rendered notification to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// =============================================================================
// SMTP SENDER - Live delivery
// =============================================================================

// SMTPSender sends HTML mail through an SMTP relay.
type SMTPSender struct {
	Addr     string // host:port
	From     string
	ReplyTo  string
	Username string
	Password string
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) Send(_ context.Context, recipient, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	if s.ReplyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", s.ReplyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	if err := smtp.SendMail(s.Addr, auth, s.From, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", recipient, err)
	}
	return nil
}

// =============================================================================
// LOG SENDER - Non-live mode
// =============================================================================

// LogSender logs instead of transmitting and always reports success.
// Used for dry runs and whenever live mode is off.
type LogSender struct {
	Log zerolog.Logger
}

var _ Sender = (*LogSender)(nil)

func (s *LogSender) Send(_ context.Context, recipient, subject, htmlBody string) error {
	preview := htmlBody
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	s.Log.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body_preview", preview).
		Msg("dry-run: notification not transmitted")
	return nil
}
