// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App is the full service configuration.
type App struct {
	// Network
	Addr string `envconfig:"ADDR" default:":5000"`

	// Payment gateway
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`

	// Google Workspace credentials (authorized-user JSON documents).
	// Calendar and Gmail use separate grants with separate scopes.
	CalendarCredentials string `envconfig:"GOOGLE_CALENDAR_CREDENTIALS" required:"true"`
	GmailCredentials    string `envconfig:"GOOGLE_GMAIL_CREDENTIALS" required:"true"`

	// Mail
	MailSender   string `envconfig:"MAIL_SENDER" required:"true"`
	TemplatePath string `envconfig:"TEMPLATE_PATH" default:"template.html"`

	// Checkout redirect targets
	SuccessURL string `envconfig:"CHECKOUT_SUCCESS_URL" default:"https://intellex-academy.vercel.app/success?session_id={CHECKOUT_SESSION_ID}"`
	CancelURL  string `envconfig:"CHECKOUT_CANCEL_URL" default:"https://intellex-academy.vercel.app/cancel"`

	// Remote call budget applied to calendar, mail and checkout calls.
	RemoteTimeout time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`

	// Session window derived for webhook-triggered bookings.
	SessionLead     time.Duration `envconfig:"SESSION_LEAD" default:"24h"`
	SessionDuration time.Duration `envconfig:"SESSION_DURATION" default:"1h"`
}

// Load reads the configuration from the environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
