package bookingstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type countingMetrics struct {
	failures map[string]int
}

func (m *countingMetrics) PersistenceError(operation string) {
	if m.failures == nil {
		m.failures = make(map[string]int)
	}
	m.failures[operation]++
}

func slot(t *testing.T, date, start string) domain.Slot {
	t.Helper()
	s, err := domain.ParseSlot(date, start)
	require.NoError(t, err)
	return s
}

func TestLoad_RecoversNextID(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister(&Data{
		Pending: []*domain.Booking{
			{ID: 3, Slot: slot(t, "2026-02-24", "10:00"), DurationSlots: 1, CustomerID: 1},
			{ID: 7, Slot: slot(t, "2026-02-24", "12:00"), DurationSlots: 1, CustomerID: 2},
		},
		Confirmed: []*domain.Booking{{Slot: slot(t, "2026-02-25", "09:00"), DurationSlots: 2, CustomerID: 3}},
		Blocked:   []domain.Slot{slot(t, "2026-02-24", "15:00")},
	})
	s := New(p, logger.NewNop(), &countingMetrics{})

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, int64(8), s.NextID())
	assert.Equal(t, int64(9), s.NextID())

	pending, confirmed := s.Counts()
	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, confirmed)
	assert.True(t, s.IsBlocked(slot(t, "2026-02-24", "15:00")))

	b, ok := s.Confirmed(slot(t, "2026-02-25", "09:00"))
	require.True(t, ok)
	assert.True(t, b.IsConfirmed())
}

func TestNextID_StartsAtOne(t *testing.T) {
	s := New(NewMemoryPersister(nil), logger.NewNop(), &countingMetrics{})
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, int64(1), s.NextID())
}

func TestMutationsArePersisted(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister(nil)
	s := New(p, logger.NewNop(), &countingMetrics{})

	b := &domain.Booking{ID: s.NextID(), Slot: slot(t, "2026-02-24", "10:00"), DurationSlots: 2, CustomerID: 42, CreatedAt: time.Now()}
	s.PutPending(ctx, b)
	s.Block(ctx, slot(t, "2026-02-24", "15:00"))
	s.PutCustomer(ctx, &domain.CustomerProfile{CustomerID: 42, Name: "Ali", Phone: "+998"})

	data, err := p.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, data.Pending, 1)
	assert.Equal(t, int64(1), data.Pending[0].ID)
	assert.Len(t, data.Blocked, 1)
	assert.Len(t, data.Customers, 1)

	removed, ok := s.DeletePending(ctx, b.ID)
	require.True(t, ok)
	s.PutConfirmed(ctx, removed)

	data, err = p.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Pending)
	require.Len(t, data.Confirmed, 1)
	assert.Equal(t, int64(0), data.Confirmed[0].ID)

	_, ok = s.DeletePending(ctx, b.ID)
	assert.False(t, ok)
}

func TestPersistenceFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister(nil)
	p.Fail = errors.New("disk full")
	m := &countingMetrics{}
	s := New(p, logger.NewNop(), m)

	s.PutPending(ctx, &domain.Booking{ID: 1, Slot: slot(t, "2026-02-24", "10:00"), DurationSlots: 1, CustomerID: 1})

	_, ok := s.Pending(1)
	assert.True(t, ok)
	assert.Equal(t, 1, m.failures["save_pending"])
}

func TestActiveBookingOf_PrefersConfirmed(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPersister(nil), logger.NewNop(), &countingMetrics{})

	s.PutPending(ctx, &domain.Booking{ID: 1, Slot: slot(t, "2026-02-24", "10:00"), DurationSlots: 1, CustomerID: 5})
	got, ok := s.ActiveBookingOf(5)
	require.True(t, ok)
	assert.True(t, got.IsPending())

	s.PutConfirmed(ctx, &domain.Booking{Slot: slot(t, "2026-02-25", "10:00"), DurationSlots: 1, CustomerID: 5})
	got, ok = s.ActiveBookingOf(5)
	require.True(t, ok)
	assert.True(t, got.IsConfirmed())

	_, ok = s.ActiveBookingOf(6)
	assert.False(t, ok)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPersister(nil), logger.NewNop(), &countingMetrics{})
	s.PutPending(ctx, &domain.Booking{ID: 1, Slot: slot(t, "2026-02-24", "10:00"), DurationSlots: 1, ServiceIDs: []string{"cut"}})

	b, _ := s.Pending(1)
	b.ServiceIDs[0] = "beard"
	b.DurationSlots = 5

	again, _ := s.Pending(1)
	assert.Equal(t, "cut", again.ServiceIDs[0])
	assert.Equal(t, 1, again.DurationSlots)
}

func TestBlockUnblock(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryPersister(nil), logger.NewNop(), &countingMetrics{})
	target := slot(t, "2026-02-24", "10:00")

	assert.True(t, s.Block(ctx, target))
	assert.False(t, s.Block(ctx, target))
	assert.Equal(t, []domain.Slot{target}, s.BlockedList())
	assert.True(t, s.Unblock(ctx, target))
	assert.False(t, s.Unblock(ctx, target))
}
