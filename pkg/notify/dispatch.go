package notify

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/intellexhq/sessionnotify/pkg/mail"
)

// maxConcurrentSends bounds parallel deliveries in one fan-out. Sends
// are independent, so they may run concurrently, but one failure must
// never cancel another recipient's delivery.
const maxConcurrentSends = 4

// Delivery is the outcome of one recipient's send.
type Delivery struct {
	Recipient string
	MessageID string
	Err       error
}

// Report enumerates per-recipient outcomes of a fan-out, in the order
// the recipients were supplied.
type Report struct {
	Deliveries []Delivery
}

// Succeeded returns the number of successful deliveries.
func (r Report) Succeeded() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of failed deliveries.
func (r Report) Failed() int {
	return len(r.Deliveries) - r.Succeeded()
}

// Dispatcher fans a rendered notification out to its recipients.
type Dispatcher struct {
	sender  mail.Sender
	lg      zerolog.Logger
	metrics Metrics
}

// NewDispatcher builds a dispatcher over the given sender.
func NewDispatcher(sender mail.Sender, lg zerolog.Logger, metrics Metrics) *Dispatcher {
	if metrics == nil {
		metrics = &NoopMetrics{}
	}
	return &Dispatcher{
		sender:  sender,
		lg:      lg.With().Str("component", "dispatcher").Logger(),
		metrics: metrics,
	}
}

// Dispatch delivers the rendered notification to each recipient. Each
// delivery is an independent remote call; failures are collected into
// the report and logged, never propagated, so one bad address cannot
// lose the other party's notification. Zero recipients is a valid,
// silent no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, subject, htmlBody string, recipients []string) Report {
	report := Report{Deliveries: make([]Delivery, len(recipients))}
	if len(recipients) == 0 {
		d.lg.Debug().Msg("no recipients, skipping fan-out")
		return report
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentSends)
	for i, to := range recipients {
		g.Go(func() error {
			id, err := d.sender.Send(ctx, to, subject, htmlBody)
			report.Deliveries[i] = Delivery{Recipient: to, MessageID: id, Err: err}
			if err != nil {
				d.metrics.RecordDelivery("error")
				d.lg.Error().Err(err).Str("recipient", to).Msg("delivery failed")
				return nil // isolate the failure, keep sending
			}
			d.metrics.RecordDelivery("success")
			d.lg.Info().Str("recipient", to).Str("message_id", id).Msg("delivered")
			return nil
		})
	}
	_ = g.Wait()

	d.lg.Info().
		Int("recipients", len(recipients)).
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Msg("fan-out complete")

	return report
}
