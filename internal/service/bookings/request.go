package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/availability"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/internal/service/timers"
)

// Request создает ожидающую запись клиента
// Проверка доступности и запись выполняются в одной команде, поэтому
// из нескольких одновременных запросов на пересекающиеся интервалы успешен только один.
func (e *Engine) Request(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	slot, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	services, err := e.catalogue.Resolve(req.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	minutes := domain.TotalMinutes(services)
	n := domain.DurationSlots(minutes)

	resp, err := do(e, ctx, "request", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		cfg := e.schedule.Current()
		if err := e.checkBookable(cfg, slot); err != nil {
			return nil, err
		}

		name, phone, lang, err := e.resolveContact(req.CustomerID, req.Name, req.Phone)
		if err != nil {
			return nil, err
		}

		if !availability.CanFit(e.store.Snapshot(cfg), slot, n) {
			return nil, fmt.Errorf("%w: %s for %d slots", ErrSlotConflict, slot, n)
		}
		if active, ok := e.store.ActiveBookingOf(req.CustomerID); ok {
			return nil, fmt.Errorf("%w: customer %d already holds %s", ErrDuplicateActiveBooking, req.CustomerID, active.Slot)
		}

		e.store.PutCustomer(ctx, &domain.CustomerProfile{
			CustomerID: req.CustomerID,
			Name:       name,
			Phone:      phone,
			Lang:       lang,
		})

		b := &domain.Booking{
			ID:              e.store.NextID(),
			Status:          domain.StatusPending,
			Slot:            slot,
			DurationSlots:   n,
			DurationMinutes: minutes,
			CustomerID:      req.CustomerID,
			CustomerName:    name,
			CustomerPhone:   phone,
			CustomerLang:    lang,
			ServiceIDs:      serviceIDs(services),
			CreatedAt:       e.now(),
		}
		e.store.PutPending(ctx, b)
		e.armExpiry(b)

		e.toProvider(tx, domain.TemplateNewRequest, e.bookingParams(b))
		e.logger.Info("Bookings: pending #%d created for %s (%s) by customer %d", b.ID, b.Slot, b.TimeRange(), b.CustomerID)

		return models.FromDomainBooking(b), nil
	})
	e.observe("request", err)
	return resp, err
}

func (e *Engine) armExpiry(b *domain.Booking) {
	e.timers.ScheduleOnce(timers.ExpiryKey(b.ID), b.CreatedAt.Add(e.opts.PendingTTL), timers.Payload{
		Kind:      timers.KindExpiry,
		BookingID: b.ID,
	})
}

func serviceIDs(services []domain.Service) []string {
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return ids
}
