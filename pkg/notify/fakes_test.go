package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/intellexhq/sessionnotify/pkg/calendar"
)

// signPayload produces a gateway signature header over payload, in the
// t=<unix>,v1=<hex hmac-sha256 of "<unix>.<payload>"> scheme.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

type fakeScheduler struct {
	mu     sync.Mutex
	calls  []calendar.Booking
	result *calendar.Result
	fail   bool
}

func (f *fakeScheduler) Schedule(_ context.Context, b calendar.Booking) (*calendar.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, b)
	if f.fail {
		return nil, fmt.Errorf("%w: backend down", calendar.ErrSchedulingUnavailable)
	}
	if f.result != nil {
		return f.result, nil
	}
	return &calendar.Result{
		EventLink: "https://calendar.example/event/1",
		JoinLink:  "https://meet.example/abc-defg",
	}, nil
}

func (f *fakeScheduler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type sentMessage struct {
	To      string
	Subject string
	HTML    string
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMessage
	failTo map[string]bool
}

func (f *fakeSender) Send(_ context.Context, to, subject, htmlBody string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[to] {
		return "", fmt.Errorf("delivery to %s refused", to)
	}
	f.sent = append(f.sent, sentMessage{To: to, Subject: subject, HTML: htmlBody})
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}
