package notify

import "time"

// Metrics defines the interface for tracking notification operations.
// Implementations must be safe for concurrent use; a nil-safe Noop
// implementation is substituted when none is configured.
type Metrics interface {
	// RecordWebhookEvent records a webhook event received from the
	// payment gateway. status: "success", "ignored" or "error".
	RecordWebhookEvent(eventType, status string)

	// RecordWebhookError records a webhook processing error.
	// errorType: e.g. "invalid_payload", "signature_mismatch",
	// "scheduling_failed", "render_failed".
	RecordWebhookError(errorType string)

	// RecordWebhookProcessingDuration records how long it took to
	// process a webhook end to end.
	RecordWebhookProcessingDuration(eventType string, duration time.Duration)

	// RecordScheduling records a calendar scheduling attempt.
	// status: "success" or "error".
	RecordScheduling(status string)

	// RecordDelivery records a single recipient delivery attempt.
	// status: "success" or "error".
	RecordDelivery(status string)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordWebhookEvent(_, _ string)                            {}
func (n *NoopMetrics) RecordWebhookError(_ string)                               {}
func (n *NoopMetrics) RecordWebhookProcessingDuration(_ string, _ time.Duration) {}
func (n *NoopMetrics) RecordScheduling(_ string)                                 {}
func (n *NoopMetrics) RecordDelivery(_ string)                                   {}
