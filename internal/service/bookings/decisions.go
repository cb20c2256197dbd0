package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/internal/service/timers"
)

// Approve подтверждает ожидающую запись
// Повторное подтверждение возвращает ErrNotFound: запись уже обработана.
func (e *Engine) Approve(ctx context.Context, id int64) (*models.BookingResponse, error) {
	resp, err := do(e, ctx, "approve", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		b, ok := e.store.DeletePending(ctx, id)
		if !ok {
			return nil, fmt.Errorf("%w: pending #%d", ErrNotFound, id)
		}
		e.timers.Cancel(timers.ExpiryKey(id))

		e.store.PutConfirmed(ctx, b)
		confirmed, _ := e.store.Confirmed(b.Slot)
		e.armReminders(confirmed)

		e.toCustomer(tx, confirmed, domain.TemplateApproved)
		e.logger.Info("Bookings: pending #%d approved, confirmed %s (%s)", id, confirmed.Slot, confirmed.TimeRange())

		return models.FromDomainBooking(confirmed), nil
	})
	e.observe("approve", err)
	return resp, err
}

// Reject отклоняет ожидающую запись
func (e *Engine) Reject(ctx context.Context, id int64) error {
	_, err := do(e, ctx, "reject", func(ctx context.Context, tx *txn) (struct{}, error) {
		b, ok := e.store.DeletePending(ctx, id)
		if !ok {
			return struct{}{}, fmt.Errorf("%w: pending #%d", ErrNotFound, id)
		}
		e.timers.Cancel(timers.ExpiryKey(id))

		e.toCustomer(tx, b, domain.TemplateRejected)
		e.logger.Info("Bookings: pending #%d rejected (%s)", id, b.Slot)

		return struct{}{}, nil
	})
	e.observe("reject", err)
	return err
}

// expirePending удаляет просроченную заявку
// Отсутствие заявки означает, что ее уже обработали, и не является ошибкой.
func (e *Engine) expirePending(ctx context.Context, tx *txn, id int64) bool {
	b, ok := e.store.DeletePending(ctx, id)
	if !ok {
		e.logger.Info("Bookings: expiry of #%d skipped, already resolved", id)
		return false
	}
	e.timers.Cancel(timers.ExpiryKey(id))

	e.toCustomer(tx, b, domain.TemplatePendingTimeout)
	e.toProvider(tx, domain.TemplatePendingTimeoutProvider, e.bookingParams(b))
	e.logger.Info("Bookings: pending #%d expired (%s)", id, b.Slot)

	e.observe("expire", nil)
	return true
}

// armReminders взводит напоминания клиенту и провайдеру; прошедшие моменты пропускаются
func (e *Engine) armReminders(b *domain.Booking) {
	at := b.Slot.StartsAt(e.opts.Location).Add(-e.opts.ReminderLead)
	if !at.After(e.now()) {
		return
	}
	for _, kind := range []timers.Kind{timers.KindCustomerReminder, timers.KindProviderReminder} {
		e.timers.ScheduleOnce(timers.ReminderKey(kind, b.Slot), at, timers.Payload{Kind: kind, Slot: b.Slot})
	}
}

func (e *Engine) cancelReminders(slot domain.Slot) {
	e.timers.Cancel(timers.ReminderKey(timers.KindCustomerReminder, slot))
	e.timers.Cancel(timers.ReminderKey(timers.KindProviderReminder, slot))
}

// sendReminder отправляет напоминание, если запись все еще подтверждена
func (e *Engine) sendReminder(tx *txn, kind timers.Kind, slot domain.Slot) {
	b, ok := e.store.Confirmed(slot)
	if !ok {
		return
	}
	if kind == timers.KindCustomerReminder {
		e.toCustomer(tx, b, domain.TemplateReminder)
	} else {
		e.toProvider(tx, domain.TemplateProviderReminder, e.bookingParams(b))
	}
	e.logger.Info("Bookings: %s sent for %s", kind, slot)
}

// rehydrate восстанавливает таймеры из загруженного состояния
func (e *Engine) rehydrate() {
	now := e.now()
	earliest := now.Add(e.opts.RehydrateGrace)

	for _, b := range e.store.PendingList() {
		fireAt := earliest
		if !b.CreatedAt.IsZero() {
			if deadline := b.CreatedAt.Add(e.opts.PendingTTL); deadline.After(fireAt) {
				fireAt = deadline
			}
		}
		e.timers.ScheduleOnce(timers.ExpiryKey(b.ID), fireAt, timers.Payload{Kind: timers.KindExpiry, BookingID: b.ID})
	}
	for _, b := range e.store.ConfirmedList() {
		e.armReminders(b)
	}
}
