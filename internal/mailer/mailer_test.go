package mailer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRender_BookingConfirmation(t *testing.T) {
	subject, body := render(KindBookingConfirmation, map[string]string{
		"patient_name":      "Ana Silva",
		"physician_name":    "Bruno Costa",
		"consultation_type": "VIDEO",
		"start_time":        "Mon, 09 Mar 2026 10:00",
	})

	assert.Equal(t, "Your consultation is booked", subject)
	assert.Contains(t, body, "Hello Ana Silva")
	assert.Contains(t, body, "Dr. Bruno Costa")
	assert.Contains(t, body, "Mon, 09 Mar 2026 10:00")
}

func TestRender_Cancellation(t *testing.T) {
	subject, body := render(KindCancellation, map[string]string{
		"patient_name":   "Ana Silva",
		"physician_name": "Bruno Costa",
		"start_time":     "Mon, 09 Mar 2026 10:00",
		"cancelled_by":   "physician",
	})

	assert.Equal(t, "Your consultation was cancelled", subject)
	assert.Contains(t, body, "cancelled by the physician")
}

func TestRender_UnknownKindFallsBack(t *testing.T) {
	subject, body := render(Kind("unknown"), map[string]string{"message": "hi"})
	assert.Equal(t, "Notification", subject)
	assert.Equal(t, "hi", body)
}

type recordingSender struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *recordingSender) Send(to string, _ Kind, _ map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, to)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestDispatcher_DeliversAsynchronously(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, zap.NewNop())

	d.Dispatch("ana@example.com", KindBookingConfirmation, map[string]string{"patient_name": "Ana"})

	require.Eventually(t, func() bool {
		return sender.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_SkipsEmptyRecipient(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, zap.NewNop())

	d.Dispatch("", KindBookingConfirmation, nil)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, sender.count())
}

func TestDispatcher_SenderFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, zap.NewNop())

	d.Dispatch("ana@example.com", KindCancellation, nil)
	d.Dispatch("bruno@example.com", KindCancellation, nil)

	require.Eventually(t, func() bool {
		return sender.count() == 2
	}, time.Second, 10*time.Millisecond)
}
