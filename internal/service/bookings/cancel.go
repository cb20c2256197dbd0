package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/internal/service/timers"
)

// CancelConfirmed отменяет подтвержденную запись
// Клиент может отменить только свою запись, провайдер любую.
func (e *Engine) CancelConfirmed(ctx context.Context, slot domain.Slot, actor domain.Actor) (*models.BookingResponse, error) {
	resp, err := do(e, ctx, "cancel_confirmed", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		return e.cancelConfirmed(ctx, tx, slot, actor)
	})
	e.observe("cancel_confirmed", err)
	return resp, err
}

// CancelPending отменяет ожидающую запись
func (e *Engine) CancelPending(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	resp, err := do(e, ctx, "cancel_pending", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		return e.cancelPending(ctx, tx, id, actor)
	})
	e.observe("cancel_pending", err)
	return resp, err
}

// CancelBySlot отменяет запись по слоту: сначала подтвержденную, затем ожидающую с тем же началом
func (e *Engine) CancelBySlot(ctx context.Context, date, start string, actor domain.Actor) (*models.BookingResponse, error) {
	slot, err := parseSlot(date, start)
	if err != nil {
		return nil, err
	}

	resp, err := do(e, ctx, "cancel_by_slot", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		if _, ok := e.store.Confirmed(slot); ok {
			return e.cancelConfirmed(ctx, tx, slot, actor)
		}
		if b, ok := e.store.PendingAt(slot); ok {
			return e.cancelPending(ctx, tx, b.ID, actor)
		}
		return nil, fmt.Errorf("%w: no booking at %s", ErrNotFound, slot)
	})
	e.observe("cancel_by_slot", err)
	return resp, err
}

func (e *Engine) cancelConfirmed(ctx context.Context, tx *txn, slot domain.Slot, actor domain.Actor) (*models.BookingResponse, error) {
	b, ok := e.store.Confirmed(slot)
	if !ok {
		return nil, fmt.Errorf("%w: no confirmed booking at %s", ErrNotFound, slot)
	}
	if !canActOn(actor, b) {
		return nil, fmt.Errorf("%w: user %d does not own %s", ErrForbidden, actor.UserID, slot)
	}

	e.cancelReminders(slot)
	e.store.DeleteConfirmed(ctx, slot)
	e.notifyCancelled(tx, b, actor)
	e.logger.Info("Bookings: confirmed %s cancelled by user %d", slot, actor.UserID)

	return models.FromDomainBooking(b), nil
}

func (e *Engine) cancelPending(ctx context.Context, tx *txn, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	b, ok := e.store.Pending(id)
	if !ok {
		return nil, fmt.Errorf("%w: pending #%d", ErrNotFound, id)
	}
	if !canActOn(actor, b) {
		return nil, fmt.Errorf("%w: user %d does not own pending #%d", ErrForbidden, actor.UserID, id)
	}

	e.timers.Cancel(timers.ExpiryKey(id))
	e.store.DeletePending(ctx, id)
	e.notifyCancelled(tx, b, actor)
	e.logger.Info("Bookings: pending #%d cancelled by user %d", id, actor.UserID)

	return models.FromDomainBooking(b), nil
}

// notifyCancelled уведомляет противоположную сторону
func (e *Engine) notifyCancelled(tx *txn, b *domain.Booking, actor domain.Actor) {
	if actor.IsProvider {
		e.toCustomer(tx, b, domain.TemplateCancelledByProvider)
		return
	}
	e.toProvider(tx, domain.TemplateCancelledByCustomer, e.bookingParams(b))
}
