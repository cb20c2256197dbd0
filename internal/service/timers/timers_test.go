package timers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/clock"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type recorder struct {
	mu    sync.Mutex
	fired []Fired
}

func (r *recorder) sink(f Fired) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, f)
}

func (r *recorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.fired))
	for i, f := range r.fired {
		keys[i] = f.Key
	}
	return keys
}

func newService(t *testing.T) (*Service, *clock.Manual, *recorder) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, time.February, 20, 12, 0, 0, 0, time.UTC))
	rec := &recorder{}
	return NewService(clk, rec.sink, logger.NewNop()), clk, rec
}

func TestKeys(t *testing.T) {
	slot, err := domain.ParseSlot("2026-02-24", "10:00")
	require.NoError(t, err)

	assert.Equal(t, "expiry:7", ExpiryKey(7))
	assert.Equal(t, "reminder:customer:2026-02-24 10:00", ReminderKey(KindCustomerReminder, slot))
	assert.Equal(t, "reminder:provider:2026-02-24 10:00", ReminderKey(KindProviderReminder, slot))
}

func TestScheduleOnce_FiresOnce(t *testing.T) {
	s, clk, rec := newService(t)

	s.ScheduleOnce(ExpiryKey(1), clk.Now().Add(30*time.Minute), Payload{Kind: KindExpiry, BookingID: 1})
	assert.Equal(t, 1, s.Len())

	clk.Advance(29 * time.Minute)
	assert.Empty(t, rec.keys())

	clk.Advance(time.Minute)
	assert.Equal(t, []string{"expiry:1"}, rec.keys())
	assert.Equal(t, 0, s.Len())

	clk.Advance(time.Hour)
	assert.Len(t, rec.keys(), 1)
}

func TestScheduleOnce_ReplacesSameKey(t *testing.T) {
	s, clk, rec := newService(t)

	s.ScheduleOnce("k", clk.Now().Add(10*time.Minute), Payload{Kind: KindExpiry, BookingID: 1})
	s.ScheduleOnce("k", clk.Now().Add(20*time.Minute), Payload{Kind: KindExpiry, BookingID: 2})

	clk.Advance(15 * time.Minute)
	assert.Empty(t, rec.keys())

	clk.Advance(10 * time.Minute)
	require.Len(t, rec.fired, 1)
	assert.Equal(t, int64(2), rec.fired[0].Payload.BookingID)
}

func TestCancel_Idempotent(t *testing.T) {
	s, clk, rec := newService(t)

	assert.False(t, s.Cancel("missing"))

	s.ScheduleOnce("k", clk.Now().Add(time.Minute), Payload{Kind: KindExpiry})
	assert.True(t, s.Cancel("k"))
	assert.False(t, s.Cancel("k"))

	clk.Advance(time.Hour)
	assert.Empty(t, rec.keys())

	s.ScheduleOnce("k2", clk.Now().Add(time.Minute), Payload{Kind: KindExpiry})
	clk.Advance(time.Minute)
	assert.False(t, s.Cancel("k2"))
}

func TestScheduleOnce_PastDeadlineFiresImmediately(t *testing.T) {
	s, clk, rec := newService(t)

	s.ScheduleOnce("late", clk.Now().Add(-time.Hour), Payload{Kind: KindExpiry})
	clk.Advance(0)

	assert.Equal(t, []string{"late"}, rec.keys())
}

func TestScheduled(t *testing.T) {
	s, clk, _ := newService(t)
	at := clk.Now().Add(time.Hour)

	s.ScheduleOnce("k", at, Payload{Kind: KindCustomerReminder})
	fireAt, payload, ok := s.Scheduled("k")
	require.True(t, ok)
	assert.True(t, fireAt.Equal(at))
	assert.Equal(t, KindCustomerReminder, payload.Kind)

	_, _, ok = s.Scheduled("other")
	assert.False(t, ok)
}

func TestStop(t *testing.T) {
	s, clk, rec := newService(t)

	s.ScheduleOnce("a", clk.Now().Add(time.Minute), Payload{})
	s.Stop()
	s.ScheduleOnce("b", clk.Now().Add(time.Minute), Payload{})

	clk.Advance(time.Hour)
	assert.Empty(t, rec.keys())
	assert.Equal(t, 0, s.Len())
}
