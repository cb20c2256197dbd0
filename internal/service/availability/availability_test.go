package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

var tashkent = time.FixedZone("UTC+5", 5*60*60)

func slot(t *testing.T, date, start string) domain.Slot {
	t.Helper()
	s, err := domain.ParseSlot(date, start)
	require.NoError(t, err)
	return s
}

func booking(t *testing.T, date, start string, n int) *domain.Booking {
	return &domain.Booking{Slot: slot(t, date, start), DurationSlots: n}
}

func TestOccupiedSlots(t *testing.T) {
	s := Snapshot{
		Config:    domain.DefaultScheduleConfig(),
		Confirmed: []*domain.Booking{booking(t, "2026-02-24", "10:00", 2)},
		Pending:   []*domain.Booking{booking(t, "2026-02-24", "14:00", 3)},
		Blocked:   []domain.Slot{slot(t, "2026-02-24", "12:00")},
	}

	taken := OccupiedSlots(s, nil)
	assert.Len(t, taken, 6)
	for _, key := range []string{"10:00", "10:30", "12:00", "14:00", "14:30", "15:00"} {
		assert.Contains(t, taken, slot(t, "2026-02-24", key))
	}

	exclude := slot(t, "2026-02-24", "10:00")
	taken = OccupiedSlots(s, &exclude)
	assert.NotContains(t, taken, slot(t, "2026-02-24", "10:00"))
	assert.NotContains(t, taken, slot(t, "2026-02-24", "10:30"))
	assert.Contains(t, taken, slot(t, "2026-02-24", "12:00"))
}

func TestAvailableSlots(t *testing.T) {
	cfg := domain.ScheduleConfig{StartHour: 9, EndHour: 12, WorkDays: []time.Weekday{time.Tuesday}}
	s := Snapshot{
		Config:    cfg,
		Confirmed: []*domain.Booking{booking(t, "2026-02-24", "10:00", 2)},
	}
	date := types.NewDate(2026, time.February, 24)

	t.Run("future date", func(t *testing.T) {
		now := time.Date(2026, time.February, 20, 12, 0, 0, 0, tashkent)
		got := AvailableSlots(s, date, now, tashkent)
		assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, strings(got))
	})

	t.Run("same day skips past units", func(t *testing.T) {
		now := time.Date(2026, time.February, 24, 9, 30, 0, 0, tashkent)
		got := AvailableSlots(s, date, now, tashkent)
		assert.Equal(t, []string{"11:00", "11:30"}, strings(got))
	})

	t.Run("past date", func(t *testing.T) {
		now := time.Date(2026, time.February, 25, 8, 0, 0, 0, tashkent)
		assert.Empty(t, AvailableSlots(s, date, now, tashkent))
	})
}

func TestCanFit(t *testing.T) {
	s := Snapshot{
		Config:    domain.ScheduleConfig{StartHour: 9, EndHour: 18, WorkDays: []time.Weekday{time.Tuesday}},
		Confirmed: []*domain.Booking{booking(t, "2026-02-24", "10:00", 2)},
		Blocked:   []domain.Slot{slot(t, "2026-02-24", "13:00")},
	}

	cases := []struct {
		name  string
		start string
		n     int
		want  bool
	}{
		{"free single", "09:00", 1, true},
		{"adjacent before booking", "09:00", 2, true},
		{"runs into booking", "09:30", 2, false},
		{"inside booking", "10:30", 1, false},
		{"adjacent after booking", "11:00", 4, true},
		{"runs into blocked", "12:00", 3, false},
		{"ends exactly at close", "17:00", 2, true},
		{"runs past close", "17:30", 2, false},
		{"before open", "08:30", 1, false},
		{"unaligned", "09:15", 1, false},
		{"zero length", "09:00", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanFit(s, slot(t, "2026-02-24", tc.start), tc.n))
		})
	}
}

func TestWorkingDates(t *testing.T) {
	cfg := domain.ScheduleConfig{StartHour: 9, EndHour: 18, WorkDays: []time.Weekday{time.Monday, time.Wednesday}}
	// 2026-02-20 is a Friday
	today := types.NewDate(2026, time.February, 20)

	got := WorkingDates(cfg, today, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-02-23", got[0].String())
	assert.Equal(t, "2026-02-25", got[1].String())
	assert.Equal(t, "2026-03-02", got[2].String())

	assert.Empty(t, WorkingDates(domain.ScheduleConfig{}, today, 3))
}

func strings(times []types.TimeString) []string {
	out := make([]string, len(times))
	for i, ts := range times {
		out[i] = ts.String()
	}
	return out
}
