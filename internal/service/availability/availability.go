package availability

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// Snapshot состояние расписания, по которому считается занятость.
// Калькулятор не хранит состояние и не меняет снимок.
type Snapshot struct {
	Config    domain.ScheduleConfig
	Confirmed []*domain.Booking
	Pending   []*domain.Booking
	Blocked   []domain.Slot
}

// OccupiedSlots возвращает множество занятых 30-минутных единиц:
// заблокированные слоты и весь интервал каждой подтвержденной и ожидающей записи.
// Записи, начинающиеся в exclude, не учитываются (используется при переносе).
func OccupiedSlots(s Snapshot, exclude *domain.Slot) map[domain.Slot]struct{} {
	taken := make(map[domain.Slot]struct{}, len(s.Blocked)+2*(len(s.Confirmed)+len(s.Pending)))

	for _, slot := range s.Blocked {
		taken[slot] = struct{}{}
	}

	mark := func(bookings []*domain.Booking) {
		for _, b := range bookings {
			if exclude != nil && b.Slot == *exclude {
				continue
			}
			for _, unit := range b.Span() {
				taken[unit] = struct{}{}
			}
		}
	}
	mark(s.Confirmed)
	mark(s.Pending)

	return taken
}

// AvailableSlots возвращает свободные времена начала на дату в хронологическом порядке.
// Перебираются границы [start_hour*60, end_hour*60) с шагом 30 минут,
// прошедшие (относительно now в часовом поясе loc) и занятые единицы отбрасываются.
func AvailableSlots(s Snapshot, date types.Date, now time.Time, loc *time.Location) []types.TimeString {
	taken := OccupiedSlots(s, nil)
	startMin, endMin := s.Config.OpenMinutes()

	result := make([]types.TimeString, 0, (endMin-startMin)/domain.SlotMinutes)
	for m := startMin; m < endMin; m += domain.SlotMinutes {
		start, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		slot := domain.NewSlot(date, start)
		if !slot.StartsAt(loc).After(now) {
			continue
		}
		if _, ok := taken[slot]; ok {
			continue
		}
		result = append(result, start)
	}

	return result
}

// CanFit проверяет, что n последовательных единиц начиная со start свободны
// и укладываются в рабочее окно дня. Это окончательная проверка конфликта,
// ее нужно выполнять непосредственно перед захватом слота.
func CanFit(s Snapshot, start domain.Slot, n int) bool {
	if n < 1 || !start.IsAligned() {
		return false
	}

	startMin, endMin := s.Config.OpenMinutes()
	m := start.Start.Minutes()
	if m < startMin || m+n*domain.SlotMinutes > endMin {
		return false
	}

	taken := OccupiedSlots(s, nil)
	for _, unit := range start.Span(n) {
		if _, ok := taken[unit]; ok {
			return false
		}
	}

	return true
}

// WorkingDates возвращает ближайшие count рабочих дат начиная с today.
// Просматривается не больше count недель, чтобы пустой список рабочих дней не зацикливал перебор.
func WorkingDates(cfg domain.ScheduleConfig, today types.Date, count int) []types.Date {
	result := make([]types.Date, 0, count)
	if len(cfg.WorkDays) == 0 {
		return result
	}

	cursor := today
	for i := 0; len(result) < count && i < count*7; i++ {
		if cfg.IsWorkDay(cursor.Weekday()) {
			result = append(result, cursor)
		}
		cursor = cursor.AddDays(1)
	}

	return result
}
