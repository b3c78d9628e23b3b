package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/intellexhq/sessionnotify/pkg/internal"
)

const (
	webhookRateLimit  = 100
	webhookRateWindow = time.Minute
)

// Routes mounts all service routes on a chi router. The webhook
// endpoint additionally sits behind a per-IP rate limiter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)
	r.Post("/create_event", h.CreateEvent)
	r.Post("/create-checkout-session", h.CreateCheckoutSession)

	limiter := internal.NewRateLimiter(webhookRateLimit, webhookRateWindow)
	r.With(limiter.Middleware).Post("/webhook", h.config.Notifier.HandleWebhook)

	return r
}
