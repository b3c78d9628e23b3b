// Package calendar schedules booked sessions as Google Calendar events
// with an attached Meet conference room.
package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrSchedulingUnavailable is returned when the calendar service cannot
// create the event. This is fatal for the whole notification flow: with
// no join link there is nothing worth emailing.
var ErrSchedulingUnavailable = errors.New("calendar scheduling unavailable")

// Booking describes the session event to create. It is built from
// request or derived values and lives for a single scheduling call.
type Booking struct {
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
}

// Result carries the links returned by the calendar service. JoinLink
// is the conferencing URL and is what recipients act on, so it is the
// one embedded in outgoing email; EventLink is the event page, reserved
// for API-caller-facing responses. (The two are easy to conflate —
// earlier revisions of this service emailed the event page instead.)
type Result struct {
	EventLink string
	JoinLink  string
}

// Scheduler creates a calendar event for a booking. Implementations
// wrap a remote calendar service and surface failures as
// ErrSchedulingUnavailable.
type Scheduler interface {
	Schedule(ctx context.Context, b Booking) (*Result, error)
}
