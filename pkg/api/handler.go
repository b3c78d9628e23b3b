// Package api exposes the HTTP surface of the notification service.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/intellexhq/sessionnotify/pkg/calendar"
	"github.com/intellexhq/sessionnotify/pkg/checkout"
	"github.com/intellexhq/sessionnotify/pkg/internal"
	"github.com/intellexhq/sessionnotify/pkg/notify"
)

// Config wires the handler's collaborators.
type Config struct {
	Scheduler calendar.Scheduler
	Checkout  *checkout.Provider
	Notifier  *notify.Notifier
	Logger    zerolog.Logger

	// SuccessURL and CancelURL are where the payment gateway sends the
	// buyer after checkout.
	SuccessURL string
	CancelURL  string
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Scheduler == nil {
		return fmt.Errorf("scheduler is required")
	}
	if c.Checkout == nil {
		return fmt.Errorf("checkout provider is required")
	}
	if c.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}
	return nil
}

// Handler serves the booking and checkout routes.
type Handler struct {
	config Config
	lg     zerolog.Logger
}

// NewHandler creates a Handler with the given configuration.
func NewHandler(config Config) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Handler{
		config: config,
		lg:     config.Logger.With().Str("component", "api").Logger(),
	}, nil
}

// Index is the root greeting route.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to the Intellex booking notification service!"))
}

type createEventRequest struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// CreateEvent is the synchronous booking-creation route: it schedules a
// calendar event with a conference room and returns both links. Unlike
// the webhook path, remote failures here surface to the caller as 500.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.StartTime == "" || req.EndTime == "" || req.Summary == "" || req.Description == "" {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing data"})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid start_time: %v", err)})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid end_time: %v", err)})
		return
	}

	result, err := h.config.Scheduler.Schedule(r.Context(), calendar.Booking{
		Start:       start,
		End:         end,
		Summary:     req.Summary,
		Description: req.Description,
	})
	if err != nil {
		h.lg.Error().Err(err).Msg("event creation failed")
		_ = internal.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = internal.WriteJSON(w, http.StatusOK, map[string]string{
		"message":    "Event created successfully",
		"event_link": result.EventLink,
		"meet_link":  result.JoinLink,
	})
}

type createCheckoutRequest struct {
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	CustomerEmail string `json:"customer_email"`
	ListingEmail  string `json:"listing_email"`
	UserName      string `json:"user_name"`
	MentorName    string `json:"mentor_name"`
}

// CreateCheckoutSession creates a hosted checkout page for a session
// purchase. The booking metadata attached to the session here is what
// the webhook path reads back once payment completes.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req createCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Name == "" || req.Amount <= 0 {
		_ = internal.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "name and a positive amount are required"})
		return
	}

	session, err := h.config.Checkout.Create(r.Context(), checkout.Request{
		Name:          req.Name,
		Amount:        req.Amount,
		CustomerEmail: req.CustomerEmail,
		ListingEmail:  req.ListingEmail,
		UserName:      req.UserName,
		MentorName:    req.MentorName,
		SuccessURL:    h.config.SuccessURL,
		CancelURL:     h.config.CancelURL,
	})
	if err != nil {
		h.lg.Error().Err(err).Msg("checkout session creation failed")
		_ = internal.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = internal.WriteJSON(w, http.StatusOK, map[string]any{
		"id":           session.ID,
		"url":          session.URL,
		"amount_total": session.AmountTotal,
		"currency":     session.Currency,
	})
}
