// Package prommetrics implements notify.Metrics using Prometheus.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements notify.Metrics backed by Prometheus collectors.
type Metrics struct {
	webhookEventsTotal        *prometheus.CounterVec
	webhookErrorsTotal        *prometheus.CounterVec
	webhookProcessingDuration *prometheus.HistogramVec
	schedulingTotal           *prometheus.CounterVec
	deliveriesTotal           *prometheus.CounterVec
}

// NewMetrics registers the notification collectors with reg under the
// given namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		webhookEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "webhook_events_total",
			Help:      "Total number of webhook events received from the payment gateway.",
		}, []string{"event_type", "status"}),

		webhookErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "webhook_errors_total",
			Help:      "Total number of webhook processing errors.",
		}, []string{"error_type"}),

		webhookProcessingDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "webhook_processing_duration_seconds",
			Help:      "Duration of webhook processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),

		schedulingTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "scheduling_total",
			Help:      "Total number of calendar scheduling attempts.",
		}, []string{"status"}),

		deliveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Total number of per-recipient email delivery attempts.",
		}, []string{"status"}),
	}
}

func (m *Metrics) RecordWebhookEvent(eventType, status string) {
	m.webhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

func (m *Metrics) RecordWebhookError(errorType string) {
	m.webhookErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *Metrics) RecordWebhookProcessingDuration(eventType string, duration time.Duration) {
	m.webhookProcessingDuration.WithLabelValues(eventType).Observe(duration.Seconds())
}

func (m *Metrics) RecordScheduling(status string) {
	m.schedulingTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordDelivery(status string) {
	m.deliveriesTotal.WithLabelValues(status).Inc()
}
