package notify

import (
	"errors"
	"net/http"
	"time"

	"github.com/intellexhq/sessionnotify/pkg/booking"
	"github.com/intellexhq/sessionnotify/pkg/internal"
)

// maxWebhookBody caps inbound webhook payloads.
const maxWebhookBody = 256 * 1024

// HandleWebhook processes one inbound payment-gateway event delivery.
// Authentication failures map to 400 with no side effects; event kinds
// other than checkout completion are acknowledged and ignored. Once
// authenticated, a scheduling or rendering failure surfaces as 500,
// while per-recipient delivery failures never change the response.
func (n *Notifier) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if n.webhookSecret == "" {
		http.Error(w, "webhook not configured", http.StatusServiceUnavailable)
		return
	}

	body, err := internal.ReadBodyStrict(w, r, maxWebhookBody)
	if err != nil {
		if errors.Is(err, internal.ErrPayloadTooLarge) {
			n.metrics.RecordWebhookError("payload_too_large")
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		} else {
			n.metrics.RecordWebhookError("invalid_payload")
			http.Error(w, "invalid payload", http.StatusBadRequest)
		}
		return
	}

	sig := r.Header.Get("Stripe-Signature")
	if sig == "" {
		sig = r.Header.Get("stripe-signature")
	}

	event, err := Authenticate(body, sig, n.webhookSecret)
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			n.metrics.RecordWebhookError("invalid_payload")
			http.Error(w, "invalid payload", http.StatusBadRequest)
		} else {
			n.metrics.RecordWebhookError("signature_mismatch")
			http.Error(w, "invalid signature", http.StatusBadRequest)
		}
		return
	}

	eventType := string(event.Type)
	md, err := booking.FromEvent(&event)
	switch {
	case errors.Is(err, booking.ErrNotApplicable):
		// Accepted but not acted upon.
		n.metrics.RecordWebhookEvent(eventType, "ignored")
		_ = internal.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	case err != nil:
		n.metrics.RecordWebhookError("invalid_payload")
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := n.Notify(r.Context(), md); err != nil {
		n.lg.Error().Err(err).Str("event_type", eventType).Msg("notification failed")
		n.metrics.RecordWebhookEvent(eventType, "error")
		n.metrics.RecordWebhookProcessingDuration(eventType, time.Since(startTime))
		_ = internal.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	n.metrics.RecordWebhookEvent(eventType, "success")
	n.metrics.RecordWebhookProcessingDuration(eventType, time.Since(startTime))
	_ = internal.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
