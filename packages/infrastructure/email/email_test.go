package email

import (
	"errors"
	"sync"
	"testing"
	"time"

	"hoa/packages/core/meeting"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	mut   sync.Mutex
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func (s *recordingSender) recipients() []string {
	s.mut.Lock()
	defer s.mut.Unlock()

	r := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		r = append(r, m.GetHeader("To")...)
	}
	return r
}

func newTestMeeting() *meeting.BoardMeeting {
	return &meeting.BoardMeeting{
		ID:          uuid.New(),
		Title:       "Budget <2025>",
		Agenda:      "1. Roof repair\n2. Pool hours",
		Location:    "Clubhouse",
		ScheduledAt: time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
	}
}

func TestMeetingAnnouncement(t *testing.T) {
	m := newTestMeeting()

	t.Run("invalid recipient", func(t *testing.T) {
		for _, to := range []string{"", "   ", "not-an-email"} {
			_, err := NewMeetingAnnouncement("Maple Grove", to, m, "http://localhost/v1/meetings/1")
			assert.NotNil(t, err, to)
		}
	})

	a, err := NewMeetingAnnouncement("Maple Grove", "resident@example.com", m, "http://localhost/v1/meetings/1")
	require.Nil(t, err)

	t.Run("subject", func(t *testing.T) {
		assert.Equal(t, `Maple Grove: board meeting "Budget <2025>"`, a.Subject())
		assert.Equal(t, "resident@example.com", a.To())
	})

	t.Run("body", func(t *testing.T) {
		body, err := a.body()
		require.NoError(t, err)

		assert.Contains(t, body, "Maple Grove: board meeting")
		assert.Contains(t, body, "Budget &lt;2025&gt;")
		assert.NotContains(t, body, "Budget <2025>")
		assert.Contains(t, body, "Friday, March 14, 2025 at 18:30 UTC")
		assert.Contains(t, body, "Clubhouse")
		assert.Contains(t, body, "Roof repair")
		assert.Contains(t, body, `href="http://localhost/v1/meetings/1"`)
	})

	t.Run("message", func(t *testing.T) {
		msg, err := a.Message("board@example.com")
		require.NoError(t, err)

		assert.Equal(t, []string{"board@example.com"}, msg.GetHeader("From"))
		assert.Equal(t, []string{"resident@example.com"}, msg.GetHeader("To"))
		assert.Equal(t, []string{a.Subject()}, msg.GetHeader("Subject"))
	})
}

func startMailer(t *testing.T, m *Mailer) chan error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	require.Eventually(t, m.IsRunning, time.Second, time.Millisecond)

	return done
}

func TestMailer(t *testing.T) {
	t.Run("sends all queued emails before stop", func(t *testing.T) {
		sender := new(recordingSender)
		m := NewMailer("test", sender, "board@example.com", MailerOptions{Workers: 3})

		recipients := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}

		err := enqueueMeetingAnnouncement(m, "Maple Grove", "http://localhost", newTestMeeting(), recipients)
		require.Nil(t, err)

		done := startMailer(t, m)

		require.NoError(t, m.Stop())
		require.NoError(t, <-done)

		assert.ElementsMatch(t, recipients, sender.recipients())
	})

	t.Run("skips invalid recipients", func(t *testing.T) {
		sender := new(recordingSender)
		m := NewMailer("test", sender, "board@example.com", MailerOptions{Workers: 1})

		err := enqueueMeetingAnnouncement(m, "Maple Grove", "http://localhost", newTestMeeting(), []string{"a@example.com", "broken", ""})
		require.Nil(t, err)

		done := startMailer(t, m)

		require.NoError(t, m.Stop())
		require.NoError(t, <-done)

		assert.Equal(t, []string{"a@example.com"}, sender.recipients())
	})

	t.Run("queue limit", func(t *testing.T) {
		m := NewMailer("test", new(recordingSender), "board@example.com", MailerOptions{Workers: 1, QueueSize: 2})

		err := enqueueMeetingAnnouncement(m, "Maple Grove", "http://localhost", newTestMeeting(),
			[]string{"a@example.com", "b@example.com", "c@example.com"},
		)
		assert.NotNil(t, err)
		assert.Equal(t, 2, m.pool.Pending())
	})

	t.Run("push after stop", func(t *testing.T) {
		m := NewMailer("test", new(recordingSender), "board@example.com", MailerOptions{Workers: 1})
		require.NoError(t, m.Stop())

		a, _ := NewMeetingAnnouncement("Maple Grove", "a@example.com", newTestMeeting(), "")
		assert.Error(t, m.Push(a))
		assert.Error(t, m.Stop())
	})
}

func TestMailerSend(t *testing.T) {
	a, _ := NewMeetingAnnouncement("Maple Grove", "a@example.com", newTestMeeting(), "")

	t.Run("sender error", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("smtp: 550 mailbox unavailable")}
		m := NewMailer("test", sender, "board@example.com", MailerOptions{Workers: 1})

		assert.EqualError(t, m.Send(a), "smtp: 550 mailbox unavailable")
	})

	t.Run("timeout", func(t *testing.T) {
		sender := &recordingSender{delay: 200 * time.Millisecond}
		m := NewMailer("test", sender, "board@example.com", MailerOptions{Workers: 1, SendTimeout: 10 * time.Millisecond})

		assert.Error(t, m.Send(a))
	})

	t.Run("circuit opens after consecutive failures", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("connection refused")}
		m := NewMailer("test", sender, "board@example.com", MailerOptions{Workers: 1})

		for range 6 {
			assert.Error(t, m.Send(a))
		}

		assert.ErrorIs(t, m.Send(a), gobreaker.ErrOpenState)
	})
}
