// Package mail delivers rendered booking notifications to individual
// recipients through the Gmail API.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// ErrDeliveryFailure wraps a failed send to a single recipient. The
// dispatcher isolates these; one bad address never aborts the batch.
var ErrDeliveryFailure = errors.New("email delivery failed")

// PlainFallback is the text/plain alternative attached alongside the
// HTML body for clients that refuse HTML.
const PlainFallback = "This is an HTML email. Please use an email client that supports HTML to view it."

// Sender delivers one message to one recipient and returns the
// provider-assigned message identifier.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (string, error)
}

// BuildMIME assembles the multipart/alternative (plain + HTML) message
// bytes for a single recipient.
func BuildMIME(from, to, subject, htmlBody string) ([]byte, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(gomail.TypeTextPlain, PlainFallback)
	m.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}
	return buf.Bytes(), nil
}
