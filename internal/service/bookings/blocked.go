package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/availability"
)

// BlockSlot снимает слот с продажи
// Повторная блокировка не ошибка; слот, занятый записью, заблокировать нельзя.
func (e *Engine) BlockSlot(ctx context.Context, date, start string) error {
	slot, err := parseSlot(date, start)
	if err != nil {
		return err
	}

	_, err = do(e, ctx, "block", func(ctx context.Context, tx *txn) (struct{}, error) {
		if e.store.IsBlocked(slot) {
			return struct{}{}, nil
		}
		snapshot := e.store.Snapshot(e.schedule.Current())
		if _, taken := availability.OccupiedSlots(snapshot, nil)[slot]; taken {
			return struct{}{}, fmt.Errorf("%w: %s is booked", ErrSlotConflict, slot)
		}

		e.store.Block(ctx, slot)
		e.toProvider(tx, domain.TemplateSlotBlocked, slotParams(slot))
		e.logger.Info("Bookings: slot %s blocked", slot)
		return struct{}{}, nil
	})
	e.observe("block", err)
	return err
}

// UnblockSlot возвращает слот в продажу
func (e *Engine) UnblockSlot(ctx context.Context, date, start string) error {
	slot, err := parseSlot(date, start)
	if err != nil {
		return err
	}

	_, err = do(e, ctx, "unblock", func(ctx context.Context, tx *txn) (struct{}, error) {
		if !e.store.Unblock(ctx, slot) {
			return struct{}{}, fmt.Errorf("%w: %s is not blocked", ErrNotFound, slot)
		}
		e.toProvider(tx, domain.TemplateSlotUnblocked, slotParams(slot))
		e.logger.Info("Bookings: slot %s unblocked", slot)
		return struct{}{}, nil
	})
	e.observe("unblock", err)
	return err
}

func slotParams(slot domain.Slot) map[string]string {
	return map[string]string{
		paramDate:      slot.Date.String(),
		paramTime:      slot.Start.String(),
		paramTimeRange: domain.TimeRange(slot.Start, 1),
	}
}
