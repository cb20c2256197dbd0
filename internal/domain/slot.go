package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Slot identifies a 30-minute unit of provider time: a date and a start time
// on a SlotMinutes boundary. Slots are comparable and usable as map keys.
type Slot struct {
	Date  types.Date
	Start types.TimeString
}

// NewSlot builds a slot from a date and a start time.
func NewSlot(date types.Date, start types.TimeString) Slot {
	return Slot{Date: date, Start: start}
}

// ParseSlot builds a slot from "YYYY-MM-DD" and "HH:MM" strings.
func ParseSlot(date, start string) (Slot, error) {
	d, err := types.ParseDate(date)
	if err != nil {
		return Slot{}, err
	}
	t, err := types.NewTimeStringFromString(start)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Date: d, Start: t}, nil
}

// ParseSlotKey parses the persisted form "YYYY-MM-DD HH:MM".
func ParseSlotKey(key string) (Slot, error) {
	date, start, ok := strings.Cut(key, " ")
	if !ok {
		return Slot{}, fmt.Errorf("invalid slot key %q", key)
	}
	return ParseSlot(date, start)
}

// Key returns the stable persisted form "YYYY-MM-DD HH:MM".
func (s Slot) Key() string {
	return s.Date.String() + " " + s.Start.String()
}

// String is Key.
func (s Slot) String() string {
	return s.Key()
}

// IsZero reports whether the slot is unset.
func (s Slot) IsZero() bool {
	return s.Date.IsZero() && s.Start.IsZero()
}

// IsAligned reports whether the start time falls on a slot boundary.
func (s Slot) IsAligned() bool {
	return !s.Start.IsZero() && s.Start.Minutes()%SlotMinutes == 0
}

// Compare orders slots chronologically.
func (s Slot) Compare(other Slot) int {
	if c := s.Date.Compare(other.Date); c != 0 {
		return c
	}
	switch {
	case s.Start.IsBefore(other.Start):
		return -1
	case s.Start.IsAfter(other.Start):
		return 1
	default:
		return 0
	}
}

// Before reports whether s starts before other.
func (s Slot) Before(other Slot) bool {
	return s.Compare(other) < 0
}

// Offset returns the slot n units after s on the same date.
func (s Slot) Offset(n int) (Slot, error) {
	start, err := s.Start.AddMinutes(n * SlotMinutes)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Date: s.Date, Start: start}, nil
}

// Span returns the n consecutive units starting at s. Units that would run
// past midnight are dropped.
func (s Slot) Span(n int) []Slot {
	span := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		unit, err := s.Offset(i)
		if err != nil || unit.Start.Minutes() >= 24*60 {
			break
		}
		span = append(span, unit)
	}
	return span
}

// StartsAt returns the absolute start instant in loc.
func (s Slot) StartsAt(loc *time.Location) time.Time {
	return s.Date.At(s.Start, loc)
}

// TimeRange formats the span of n units starting at start, e.g. "10:00–11:00".
func TimeRange(start types.TimeString, n int) string {
	end := start.Minutes() + n*SlotMinutes
	return fmt.Sprintf("%s–%02d:%02d", start, end/60, end%60)
}
