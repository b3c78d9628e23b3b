package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// gmailUserID addresses the mailbox of the authenticated user.
const gmailUserID = "me"

// GmailSender implements Sender over the Gmail API, sending from a
// fixed sender identity.
type GmailSender struct {
	svc     *gmail.Service
	from    string
	lg      zerolog.Logger
	timeout time.Duration
}

// NewGmailSender builds a sender from authorized-user credential JSON
// scoped to gmail.send.
func NewGmailSender(ctx context.Context, credentialsJSON []byte, from string, timeout time.Duration, lg zerolog.Logger) (*GmailSender, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("missing gmail credentials")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parsing gmail credentials: %w", err)
	}
	svc, err := gmail.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("building gmail service: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GmailSender{
		svc:     svc,
		from:    from,
		lg:      lg.With().Str("component", "gmail_sender").Logger(),
		timeout: timeout,
	}, nil
}

// Send encodes the message and submits it through users.messages.send,
// returning the Gmail message ID.
func (g *GmailSender) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := BuildMIME(g.from, to, subject, htmlBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	sent, err := g.svc.Users.Messages.Send(gmailUserID, msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}

	g.lg.Info().Str("message_id", sent.Id).Msg("message sent")
	return sent.Id, nil
}
