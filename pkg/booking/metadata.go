// Package booking extracts session booking details from verified
// payment-gateway events.
package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v83"
)

var (
	// ErrNotApplicable is returned for event kinds the notification
	// flow does not act on. Callers short-circuit with a benign
	// acknowledgment rather than an error response.
	ErrNotApplicable = errors.New("event kind not applicable")

	// ErrMalformedAmount is returned when the amount metadata field is
	// present but not an integer count of minor currency units.
	ErrMalformedAmount = errors.New("malformed amount")
)

// EventCheckoutCompleted is the only event kind acted upon; all others
// are accepted and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// Metadata carries the booking-relevant fields attached to a checkout
// session when it was created. Every field is optional: the extraction
// policy is deliberately permissive, and missing emails simply degrade
// the fan-out to fewer (possibly zero) recipients.
type Metadata struct {
	CustomerEmail string
	ListingEmail  string
	UserName      string
	MentorName    string
	Amount        string // integer minor currency units, e.g. cents
}

// FromEvent parses the checkout session out of a verified event and
// reads the booking metadata from it. Events of any other kind return
// ErrNotApplicable.
func FromEvent(event *stripe.Event) (Metadata, error) {
	if string(event.Type) != EventCheckoutCompleted {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNotApplicable, event.Type)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return Metadata{}, fmt.Errorf("unmarshaling checkout session: %w", err)
	}

	return FromSession(&session), nil
}

// FromSession reads the five booking fields from the session metadata
// map, defaulting each to the empty string when absent.
func FromSession(session *stripe.CheckoutSession) Metadata {
	get := func(key string) string {
		if session.Metadata == nil {
			return ""
		}
		return session.Metadata[key]
	}
	return Metadata{
		CustomerEmail: get("customer_email"),
		ListingEmail:  get("listing_email"),
		UserName:      get("user_name"),
		MentorName:    get("mentor_name"),
		Amount:        get("amount"),
	}
}

// Recipients returns the non-empty notification addresses in customer,
// listing-owner order. An empty slice is valid and means the fan-out is
// a no-op.
func (m Metadata) Recipients() []string {
	var out []string
	for _, email := range []string{m.CustomerEmail, m.ListingEmail} {
		if email != "" {
			out = append(out, email)
		}
	}
	return out
}

// DisplayPrice converts the minor-unit amount to a major-unit decimal
// string with at least one fractional digit ("5000" -> "50.0"). An
// empty amount yields an empty string. A non-numeric amount returns
// ErrMalformedAmount; callers treat that as non-fatal and display an
// empty price instead of aborting the notification.
func (m Metadata) DisplayPrice() (string, error) {
	if m.Amount == "" {
		return "", nil
	}
	cents, err := strconv.ParseInt(m.Amount, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedAmount, m.Amount)
	}
	s := strconv.FormatFloat(float64(cents)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}
