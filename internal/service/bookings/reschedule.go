package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/availability"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

// Reschedule переносит подтвержденную запись на новый слот
// Старая запись снимается до проверки нового слота, чтобы ее собственный интервал
// не считался конфликтом. Если новый слот занят, старая запись и ее напоминания
// восстанавливаются без изменений и возвращается ErrSlotConflict.
// При успехе создается новая ожидающая запись со ссылкой на старый слот.
func (e *Engine) Reschedule(ctx context.Context, date, start string, req models.RescheduleRequest, actor domain.Actor) (*models.BookingResponse, error) {
	oldSlot, err := parseSlot(date, start)
	if err != nil {
		return nil, err
	}
	newSlot, err := parseSlot(req.NewDate, req.NewTime)
	if err != nil {
		return nil, err
	}
	if req.NSlots < 0 {
		return nil, fmt.Errorf("%w: nSlots must not be negative", ErrInvalidInput)
	}

	resp, err := do(e, ctx, "reschedule", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		old, ok := e.store.Confirmed(oldSlot)
		if !ok {
			return nil, fmt.Errorf("%w: no confirmed booking at %s", ErrNotFound, oldSlot)
		}
		if !canActOn(actor, old) {
			return nil, fmt.Errorf("%w: user %d does not own %s", ErrForbidden, actor.UserID, oldSlot)
		}

		cfg := e.schedule.Current()
		if err := e.checkBookable(cfg, newSlot); err != nil {
			return nil, err
		}

		n := req.NSlots
		minutes := old.DurationMinutes
		if n == 0 {
			n = old.DurationSlots
		} else if n != old.DurationSlots {
			minutes = n * domain.SlotMinutes
		}

		e.cancelReminders(oldSlot)
		e.store.DeleteConfirmed(ctx, oldSlot)

		if !availability.CanFit(e.store.Snapshot(cfg), newSlot, n) {
			e.store.PutConfirmed(ctx, old)
			e.armReminders(old)
			e.logger.Warn("Bookings: reschedule %s -> %s lost to a conflict, restored", oldSlot, newSlot)
			return nil, fmt.Errorf("%w: %s for %d slots", ErrSlotConflict, newSlot, n)
		}

		from := old.Slot
		b := &domain.Booking{
			ID:              e.store.NextID(),
			Status:          domain.StatusPending,
			Slot:            newSlot,
			DurationSlots:   n,
			DurationMinutes: minutes,
			CustomerID:      old.CustomerID,
			CustomerName:    old.CustomerName,
			CustomerPhone:   old.CustomerPhone,
			CustomerLang:    old.CustomerLang,
			ServiceIDs:      append([]string(nil), old.ServiceIDs...),
			CreatedAt:       e.now(),
			RescheduledFrom: &from,
		}
		e.store.PutPending(ctx, b)
		e.armExpiry(b)

		params := e.bookingParams(b)
		params[paramOldTimeRange] = old.TimeRange()
		e.toProvider(tx, domain.TemplateRescheduleRequest, params)
		e.logger.Info("Bookings: %s rescheduled to pending #%d at %s", oldSlot, b.ID, newSlot)

		return models.FromDomainBooking(b), nil
	})
	e.observe("reschedule", err)
	return resp, err
}
