package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	calendarID        = "primary"
	meetSolutionType  = "hangoutsMeet"
	defaultCallBudget = 10 * time.Second
)

// GoogleScheduler implements Scheduler against the Google Calendar v3
// API.
type GoogleScheduler struct {
	svc     *gcal.Service
	lg      zerolog.Logger
	timeout time.Duration
}

// NewGoogleScheduler builds a scheduler from authorized-user credential
// JSON (the same document `gcloud auth` or an OAuth consent flow
// produces), scoped to calendar event creation.
func NewGoogleScheduler(ctx context.Context, credentialsJSON []byte, timeout time.Duration, lg zerolog.Logger) (*GoogleScheduler, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("missing calendar credentials")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, gcal.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar credentials: %w", err)
	}
	svc, err := gcal.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("building calendar service: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultCallBudget
	}
	return &GoogleScheduler{
		svc:     svc,
		lg:      lg.With().Str("component", "google_scheduler").Logger(),
		timeout: timeout,
	}, nil
}

// Schedule inserts the event on the primary calendar with a Meet
// conference attached and returns the resulting links.
func (g *GoogleScheduler) Schedule(ctx context.Context, b Booking) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	created, err := g.svc.Events.Insert(calendarID, buildEvent(b)).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		g.lg.Error().Err(err).Str("summary", b.Summary).Msg("calendar insert failed")
		return nil, fmt.Errorf("%w: %v", ErrSchedulingUnavailable, err)
	}

	g.lg.Info().
		Str("event_id", created.Id).
		Str("join_link", created.HangoutLink).
		Msg("calendar event created")

	return &Result{
		EventLink: created.HtmlLink,
		JoinLink:  created.HangoutLink,
	}, nil
}

// buildEvent maps a booking onto the wire representation. Times are
// sent as RFC 3339 instants pinned to UTC, matching how the calendar
// service echoes them back.
func buildEvent(b Booking) *gcal.Event {
	return &gcal.Event{
		Summary:     b.Summary,
		Description: b.Description,
		Start: &gcal.EventDateTime{
			DateTime: b.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: b.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: meetSolutionType,
				},
			},
		},
	}
}
