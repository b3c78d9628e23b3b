// Command server runs the booking notification service: it accepts
// payment-gateway webhooks and the synchronous booking/checkout routes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/intellexhq/sessionnotify/pkg/api"
	"github.com/intellexhq/sessionnotify/pkg/calendar"
	"github.com/intellexhq/sessionnotify/pkg/checkout"
	"github.com/intellexhq/sessionnotify/pkg/config"
	"github.com/intellexhq/sessionnotify/pkg/mail"
	"github.com/intellexhq/sessionnotify/pkg/notify"
	prommetrics "github.com/intellexhq/sessionnotify/pkg/notify/metrics/prometheus"
)

func main() {
	lg := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatal().Err(err).Msg("loading configuration")
	}

	ctx := context.Background()

	scheduler, err := calendar.NewGoogleScheduler(ctx, []byte(cfg.CalendarCredentials), cfg.RemoteTimeout, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("building calendar scheduler")
	}

	sender, err := mail.NewGmailSender(ctx, []byte(cfg.GmailCredentials), cfg.MailSender, cfg.RemoteTimeout, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("building gmail sender")
	}

	provider, err := checkout.NewProvider(cfg.StripeSecretKey, cfg.RemoteTimeout, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("building checkout provider")
	}

	registry := prometheus.NewRegistry()
	metrics := prommetrics.NewMetrics(registry, "sessionnotify")

	notifier, err := notify.New(notify.Config{
		Scheduler:       scheduler,
		Sender:          sender,
		TemplatePath:    cfg.TemplatePath,
		WebhookSecret:   cfg.StripeWebhookSecret,
		SessionLead:     cfg.SessionLead,
		SessionDuration: cfg.SessionDuration,
		Logger:          lg,
		Metrics:         metrics,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("building notifier")
	}

	handler, err := api.NewHandler(api.Config{
		Scheduler:  scheduler,
		Checkout:   provider,
		Notifier:   notifier,
		Logger:     lg,
		SuccessURL: cfg.SuccessURL,
		CancelURL:  cfg.CancelURL,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("building api handler")
	}

	router := handler.Routes()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("shutdown")
	}
	lg.Info().Msg("stopped")
}
