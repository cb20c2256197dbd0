package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// BookingStatus is the tag of the booking variant. Rejected, cancelled and
// expired bookings are deleted rather than retained, so only the two live
// states exist.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
)

// Booking represents a customer's claim on a run of slots.
// Pending bookings are keyed by ID; confirmed bookings are keyed by Slot.
type Booking struct {
	ID     int64 // pending only; zero once confirmed
	Status BookingStatus

	Slot            Slot
	DurationSlots   int
	DurationMinutes int

	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	CustomerLang  string

	ServiceIDs []string

	CreatedAt       time.Time
	RescheduledFrom *Slot
}

// IsPending returns true if the booking awaits a provider decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsConfirmed returns true if the provider approved the booking
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Span returns every unit the booking occupies.
func (b *Booking) Span() []Slot {
	return b.Slot.Span(b.units())
}

// Occupies reports whether unit falls within the booking's span.
func (b *Booking) Occupies(unit Slot) bool {
	if unit.Date != b.Slot.Date {
		return false
	}
	start := b.Slot.Start.Minutes()
	m := unit.Start.Minutes()
	return m >= start && m < start+b.units()*SlotMinutes
}

// End returns the end time of the span.
func (b *Booking) End() types.TimeString {
	end, err := b.Slot.Start.AddMinutes(b.units() * SlotMinutes)
	if err != nil {
		return b.Slot.Start
	}
	return end
}

// TimeRange formats the span, e.g. "10:00–11:00".
func (b *Booking) TimeRange() string {
	return TimeRange(b.Slot.Start, b.units())
}

// Clone returns a deep copy.
func (b *Booking) Clone() *Booking {
	c := *b
	if b.ServiceIDs != nil {
		c.ServiceIDs = append([]string(nil), b.ServiceIDs...)
	}
	if b.RescheduledFrom != nil {
		from := *b.RescheduledFrom
		c.RescheduledFrom = &from
	}
	return &c
}

func (b *Booking) units() int {
	if b.DurationSlots < 1 {
		return 1
	}
	return b.DurationSlots
}
