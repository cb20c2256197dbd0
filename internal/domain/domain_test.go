package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

func TestDurationSlots(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{0, 1},
		{30, 1},
		{45, 2},
		{61, 3},
		{90, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DurationSlots(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestSlotKeyRoundTrip(t *testing.T) {
	s, err := ParseSlot("2026-02-24", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-24 10:00", s.Key())

	parsed, err := ParseSlotKey(s.Key())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)

	_, err = ParseSlotKey("2026-02-24T10:00")
	assert.Error(t, err)
}

func TestSlotOrdering(t *testing.T) {
	a := mustSlot(t, "2026-02-24", "10:00")
	b := mustSlot(t, "2026-02-24", "10:30")
	c := mustSlot(t, "2026-02-25", "09:00")

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.IsAligned())
	assert.False(t, mustSlot(t, "2026-02-24", "10:15").IsAligned())
}

func TestBookingSpan(t *testing.T) {
	b := &Booking{Slot: mustSlot(t, "2026-02-24", "10:00"), DurationSlots: 2}

	assert.Equal(t, []Slot{
		mustSlot(t, "2026-02-24", "10:00"),
		mustSlot(t, "2026-02-24", "10:30"),
	}, b.Span())
	assert.True(t, b.Occupies(mustSlot(t, "2026-02-24", "10:30")))
	assert.False(t, b.Occupies(mustSlot(t, "2026-02-24", "11:00")))
	assert.False(t, b.Occupies(mustSlot(t, "2026-02-25", "10:00")))
	assert.Equal(t, "10:00–11:00", b.TimeRange())
	assert.Equal(t, "11:00", b.End().String())
}

func TestBookingClone(t *testing.T) {
	from := mustSlot(t, "2026-02-23", "12:00")
	b := &Booking{ServiceIDs: []string{"cut"}, RescheduledFrom: &from}

	c := b.Clone()
	c.ServiceIDs[0] = "beard"
	c.RescheduledFrom.Start = types.MustTimeString("13:00")

	assert.Equal(t, "cut", b.ServiceIDs[0])
	assert.Equal(t, "12:00", b.RescheduledFrom.Start.String())
}

func TestScheduleConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultScheduleConfig().Validate())

	cfg := DefaultScheduleConfig()
	cfg.StartHour, cfg.EndHour = 12, 12
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidScheduleConfig)

	cfg = DefaultScheduleConfig()
	cfg.StartHour = 4
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidScheduleConfig)

	cfg = DefaultScheduleConfig()
	cfg.EndHour = 24
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidScheduleConfig)

	cfg = DefaultScheduleConfig()
	cfg.WorkDays = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidScheduleConfig)

	cfg = DefaultScheduleConfig()
	cfg.WorkDays = []time.Weekday{time.Monday, time.Monday}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidScheduleConfig)
}

func TestCatalogue(t *testing.T) {
	c := NewCatalogue([]Service{
		{ID: "cut", Minutes: 45, Price: 50000},
		{ID: "beard", Minutes: 16, Price: 20000},
	})

	services, err := c.Resolve([]string{"cut", "beard"})
	require.NoError(t, err)
	assert.Equal(t, 61, TotalMinutes(services))
	assert.Equal(t, int64(70000), TotalPrice(services))
	assert.Equal(t, 3, DurationSlots(TotalMinutes(services)))

	_, err = c.Resolve([]string{"massage"})
	assert.Error(t, err)
}

func TestCatalogue_ResolveCollapsesRepeats(t *testing.T) {
	c := NewCatalogue([]Service{
		{ID: "cut", Minutes: 45, Price: 50000},
		{ID: "beard", Minutes: 16, Price: 20000},
	})

	services, err := c.Resolve([]string{"beard", "cut", "beard", "cut"})
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "beard", services[0].ID)
	assert.Equal(t, "cut", services[1].ID)
	assert.Equal(t, int64(70000), TotalPrice(services))
}

func mustSlot(t *testing.T, date, start string) Slot {
	t.Helper()
	s, err := ParseSlot(date, start)
	require.NoError(t, err)
	return s
}
