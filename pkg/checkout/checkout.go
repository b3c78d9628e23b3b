// Package checkout creates Stripe Checkout Sessions for one-time
// session purchases. The metadata attached here is what the webhook
// path later reads to address and personalize the confirmation email.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v83"
)

// ErrNotConfigured is returned when the Stripe API key is absent.
var ErrNotConfigured = errors.New("checkout provider not configured")

const (
	currencyUSD       = "usd"
	defaultAPITimeout = 10 * time.Second
)

// Request describes a session purchase to turn into a hosted checkout
// page. Amount is in minor currency units (cents).
type Request struct {
	Name          string
	Amount        int64
	CustomerEmail string
	ListingEmail  string
	UserName      string
	MentorName    string
	SuccessURL    string
	CancelURL     string
}

// Session is the caller-facing slice of the created checkout session.
type Session struct {
	ID          string
	URL         string
	AmountTotal int64
	Currency    string
}

// Provider creates checkout sessions against the Stripe API.
type Provider struct {
	client  *stripe.Client
	lg      zerolog.Logger
	timeout time.Duration
}

// NewProvider builds a checkout provider from a Stripe secret key.
func NewProvider(apiKey string, timeout time.Duration, lg zerolog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}
	return &Provider{
		client:  stripe.NewClient(apiKey),
		lg:      lg.With().Str("component", "checkout").Logger(),
		timeout: timeout,
	}, nil
}

// Create creates a one-time-payment Checkout Session and returns its
// ID and hosted URL.
func (p *Provider) Create(ctx context.Context, req Request) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	session, err := p.client.V1CheckoutSessions.Create(ctx, buildParams(req))
	if err != nil {
		p.lg.Error().Err(err).Str("product", req.Name).Msg("checkout session creation failed")
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	p.lg.Info().
		Str("session_id", session.ID).
		Int64("amount_total", session.AmountTotal).
		Msg("checkout session created")

	return &Session{
		ID:          session.ID,
		URL:         session.URL,
		AmountTotal: session.AmountTotal,
		Currency:    string(session.Currency),
	}, nil
}

// buildParams maps a purchase request onto Stripe create params. All
// five notification metadata keys are attached up front so the webhook
// handler can read them back without another API round trip.
func buildParams(req Request) *stripe.CheckoutSessionCreateParams {
	params := &stripe.CheckoutSessionCreateParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(currencyUSD),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Name),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata: map[string]string{
			"customer_email": req.CustomerEmail,
			"listing_email":  req.ListingEmail,
			"user_name":      req.UserName,
			"mentor_name":    req.MentorName,
			"amount":         fmt.Sprintf("%d", req.Amount),
		},
	}
	return params
}
