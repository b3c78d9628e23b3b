package notify

import "errors"

var (
	// ErrInvalidPayload is returned when the webhook body is not a
	// well-formed event envelope. No side effects are attempted.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrSignatureMismatch is returned when the signature header does
	// not verify against the raw body. No side effects are attempted.
	ErrSignatureMismatch = errors.New("webhook signature mismatch")

	// ErrNotConfigured is returned when the webhook secret is absent.
	ErrNotConfigured = errors.New("webhook secret not configured")
)
