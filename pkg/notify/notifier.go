// Package notify orchestrates the side effects of a completed checkout:
// authenticating the gateway event, scheduling the session on the
// calendar, rendering the confirmation template and fanning the result
// out to the parties involved.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/intellexhq/sessionnotify/pkg/booking"
	"github.com/intellexhq/sessionnotify/pkg/calendar"
	"github.com/intellexhq/sessionnotify/pkg/mail"
	"github.com/intellexhq/sessionnotify/pkg/render"
)

const (
	// Subject is the fixed subject line of the confirmation email.
	Subject = "You have booked an Intellex Session"

	sessionSummary     = "Intellex mentoring session"
	sessionDescription = "This session was scheduled automatically after a successful payment."

	defaultSessionLead     = 24 * time.Hour
	defaultSessionDuration = time.Hour
)

// Config wires the orchestrator's collaborators. Scheduler, Sender and
// TemplatePath are required; the gateway clients are injected so the
// core stays testable without live credentials.
type Config struct {
	Scheduler     calendar.Scheduler
	Sender        mail.Sender
	TemplatePath  string
	WebhookSecret string

	// SessionLead is how far ahead of now the session is scheduled;
	// SessionDuration is its length. Zero values take the defaults.
	SessionLead     time.Duration
	SessionDuration time.Duration

	Logger  zerolog.Logger
	Metrics Metrics

	// Now is the clock; tests override it. Defaults to time.Now.
	Now func() time.Time
}

// Notifier drives one checkout-completion notification per webhook
// delivery. It holds no mutable state across requests; each invocation
// loads its own template copy.
type Notifier struct {
	scheduler     calendar.Scheduler
	dispatcher    *Dispatcher
	templatePath  string
	webhookSecret string
	lead          time.Duration
	duration      time.Duration
	lg            zerolog.Logger
	metrics       Metrics
	now           func() time.Time
}

// New validates the configuration and builds a Notifier.
func New(cfg Config) (*Notifier, error) {
	if cfg.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if cfg.Sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	if cfg.TemplatePath == "" {
		return nil, fmt.Errorf("template path is required")
	}
	if cfg.SessionLead <= 0 {
		cfg.SessionLead = defaultSessionLead
	}
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = defaultSessionDuration
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &NoopMetrics{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	lg := cfg.Logger.With().Str("component", "notifier").Logger()
	return &Notifier{
		scheduler:     cfg.Scheduler,
		dispatcher:    NewDispatcher(cfg.Sender, cfg.Logger, cfg.Metrics),
		templatePath:  cfg.TemplatePath,
		webhookSecret: cfg.WebhookSecret,
		lead:          cfg.SessionLead,
		duration:      cfg.SessionDuration,
		lg:            lg,
		metrics:       cfg.Metrics,
		now:           cfg.Now,
	}, nil
}

// Notify runs the orchestration for one completed checkout: schedule
// the session, render the confirmation and fan it out. A scheduling or
// rendering failure aborts the whole notification; per-recipient
// delivery failures are isolated inside the dispatcher.
func (n *Notifier) Notify(ctx context.Context, md booking.Metadata) error {
	start := n.now().Add(n.lead).Truncate(time.Hour)
	result, err := n.scheduler.Schedule(ctx, calendar.Booking{
		Start:       start,
		End:         start.Add(n.duration),
		Summary:     sessionSummary,
		Description: sessionDescription,
	})
	if err != nil {
		n.metrics.RecordScheduling("error")
		n.metrics.RecordWebhookError("scheduling_failed")
		return fmt.Errorf("scheduling session: %w", err)
	}
	n.metrics.RecordScheduling("success")

	recipients := md.Recipients()
	if len(recipients) == 0 {
		n.lg.Info().Msg("no recipient emails in metadata, nothing to deliver")
		return nil
	}

	price, err := md.DisplayPrice()
	if err != nil {
		// Degrade to an empty display price rather than losing the
		// whole notification over a bad amount field.
		n.lg.Warn().Err(err).Str("amount", md.Amount).Msg("unparsable amount, displaying empty price")
		price = ""
	}

	tmpl, err := render.Load(n.templatePath)
	if err != nil {
		n.metrics.RecordWebhookError("template_load_failed")
		return err
	}

	// The join link is what recipients act on, so it is the one bound
	// into the email; the event page link stays API-facing.
	html, err := render.Render(tmpl, map[string]string{
		"name":        md.UserName,
		"price":       price,
		"hyperlink":   result.JoinLink,
		"mentor_name": md.MentorName,
	})
	if err != nil {
		n.metrics.RecordWebhookError("render_failed")
		return fmt.Errorf("rendering notification: %w", err)
	}

	report := n.dispatcher.Dispatch(ctx, Subject, html, recipients)
	if report.Failed() > 0 {
		n.lg.Warn().
			Int("failed", report.Failed()).
			Int("succeeded", report.Succeeded()).
			Msg("partial delivery")
	}
	return nil
}
