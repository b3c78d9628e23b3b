package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellexhq/sessionnotify/pkg/booking"
	"github.com/intellexhq/sessionnotify/pkg/calendar"
)

const testTemplate = `<html><head><style>body { font-family: sans-serif; }</style></head>` +
	`<body><p>Hi {{name}}, your session with {{mentor_name}} is booked for {{price}} USD.</p>` +
	`<a href="{{hyperlink}}">Join</a></body></html>`

func writeTestTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.html")
	require.NoError(t, os.WriteFile(path, []byte(testTemplate), 0o644))
	return path
}

func newTestNotifier(t *testing.T, scheduler *fakeScheduler, sender *fakeSender) *Notifier {
	t.Helper()
	n, err := New(Config{
		Scheduler:     scheduler,
		Sender:        sender,
		TemplatePath:  writeTestTemplate(t),
		WebhookSecret: testSecret,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)
	return n
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Sender: &fakeSender{}, TemplatePath: "x"})
	assert.Error(t, err)

	_, err = New(Config{Scheduler: &fakeScheduler{}, TemplatePath: "x"})
	assert.Error(t, err)

	_, err = New(Config{Scheduler: &fakeScheduler{}, Sender: &fakeSender{}})
	assert.Error(t, err)
}

func TestNotify_SchedulesAndFansOut(t *testing.T) {
	scheduler := &fakeScheduler{}
	sender := &fakeSender{}
	n := newTestNotifier(t, scheduler, sender)

	md := booking.Metadata{
		CustomerEmail: "a@x.com",
		ListingEmail:  "b@x.com",
		UserName:      "Ann",
		MentorName:    "Bo",
		Amount:        "5000",
	}
	require.NoError(t, n.Notify(context.Background(), md))

	assert.Equal(t, 1, scheduler.callCount())
	msgs := sender.messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, Subject, m.Subject)
		assert.Contains(t, m.HTML, "Hi Ann")
		assert.Contains(t, m.HTML, "50.0 USD")
		assert.Contains(t, m.HTML, "https://meet.example/abc-defg", "join link is the emailed link")
		assert.NotContains(t, m.HTML, "https://calendar.example", "event page link stays out of email")
		assert.Contains(t, m.HTML, "body { font-family: sans-serif; }")
	}
}

func TestNotify_SessionWindow(t *testing.T) {
	scheduler := &fakeScheduler{}
	now := time.Date(2026, 3, 10, 14, 25, 0, 0, time.UTC)
	n, err := New(Config{
		Scheduler:       scheduler,
		Sender:          &fakeSender{},
		TemplatePath:    writeTestTemplate(t),
		WebhookSecret:   testSecret,
		SessionLead:     48 * time.Hour,
		SessionDuration: 30 * time.Minute,
		Logger:          zerolog.Nop(),
		Now:             func() time.Time { return now },
	})
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), booking.Metadata{CustomerEmail: "a@x.com"}))

	require.Equal(t, 1, scheduler.callCount())
	b := scheduler.calls[0]
	assert.Equal(t, time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, 30*time.Minute, b.End.Sub(b.Start))
}

func TestNotify_SchedulingFailureIsFatal(t *testing.T) {
	scheduler := &fakeScheduler{fail: true}
	sender := &fakeSender{}
	n := newTestNotifier(t, scheduler, sender)

	err := n.Notify(context.Background(), booking.Metadata{CustomerEmail: "a@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrSchedulingUnavailable)
	assert.Empty(t, sender.messages(), "no email is attempted without a calendar link")
}

func TestNotify_NoRecipients(t *testing.T) {
	scheduler := &fakeScheduler{}
	sender := &fakeSender{}
	n := newTestNotifier(t, scheduler, sender)

	require.NoError(t, n.Notify(context.Background(), booking.Metadata{UserName: "Ann"}))

	// The session is still scheduled; there is just nobody to notify.
	assert.Equal(t, 1, scheduler.callCount())
	assert.Empty(t, sender.messages())
}

func TestNotify_MalformedAmountDegrades(t *testing.T) {
	scheduler := &fakeScheduler{}
	sender := &fakeSender{}
	n := newTestNotifier(t, scheduler, sender)

	md := booking.Metadata{CustomerEmail: "a@x.com", UserName: "Ann", Amount: "fifty"}
	require.NoError(t, n.Notify(context.Background(), md))

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].HTML, "booked for  USD", "empty price substituted for display")
}

func TestNotify_MissingTemplateFails(t *testing.T) {
	n, err := New(Config{
		Scheduler:     &fakeScheduler{},
		Sender:        &fakeSender{},
		TemplatePath:  filepath.Join(t.TempDir(), "absent.html"),
		WebhookSecret: testSecret,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)

	err = n.Notify(context.Background(), booking.Metadata{CustomerEmail: "a@x.com"})
	assert.Error(t, err)
}
