package notify

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v83"
)

// Authenticate verifies that the raw webhook body was produced by the
// payment gateway and parses it into an event. Verification runs over
// the exact raw bytes before anything is parsed; the SDK computes the
// HMAC-SHA256 over the body and compares in constant time. Nothing in
// the payload is trusted until that check passes.
//
// Returns ErrInvalidPayload when the body is not a well-formed event
// envelope and ErrSignatureMismatch when the signature does not verify.
// Pure function of its inputs; no side effects.
func Authenticate(body []byte, sigHeader, secret string) (stripe.Event, error) {
	event, err := stripe.ConstructEvent(body, sigHeader, secret)
	if err != nil {
		if !json.Valid(body) {
			return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}
	return event, nil
}
