package bookings

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/availability"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// upcomingWindow насколько в прошлое смотрит список ближайших записей
const upcomingWindow = time.Hour

// AvailableSlots возвращает свободные времена начала на дату
// Для нерабочего дня список пуст.
func (e *Engine) AvailableSlots(ctx context.Context, date string) (*models.SlotsResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	return do(e, ctx, "available_slots", func(ctx context.Context, tx *txn) (*models.SlotsResponse, error) {
		resp := &models.SlotsResponse{Date: d.String(), Slots: []string{}}

		cfg := e.schedule.Current()
		if !cfg.IsWorkDay(d.Weekday()) {
			return resp, nil
		}
		for _, start := range availability.AvailableSlots(e.store.Snapshot(cfg), d, e.now(), e.opts.Location) {
			resp.Slots = append(resp.Slots, start.String())
		}
		return resp, nil
	})
}

// WorkingDates возвращает ближайшие рабочие даты на горизонте записи
func (e *Engine) WorkingDates(ctx context.Context) (*models.DatesResponse, error) {
	return do(e, ctx, "working_dates", func(ctx context.Context, tx *txn) (*models.DatesResponse, error) {
		dates := availability.WorkingDates(e.schedule.Current(), types.DateOf(e.now()), e.opts.HorizonDays)

		resp := &models.DatesResponse{Dates: make([]models.WorkingDate, 0, len(dates))}
		for _, d := range dates {
			resp.Dates = append(resp.Dates, models.WorkingDate{Date: d.String(), Weekday: d.Weekday().String()})
		}
		return resp, nil
	})
}

// CustomerBooking возвращает активную запись клиента
func (e *Engine) CustomerBooking(ctx context.Context, customerID int64) (*models.BookingResponse, error) {
	return do(e, ctx, "customer_booking", func(ctx context.Context, tx *txn) (*models.BookingResponse, error) {
		b, ok := e.store.ActiveBookingOf(customerID)
		if !ok {
			return nil, fmt.Errorf("%w: customer %d has no active booking", ErrNotFound, customerID)
		}
		return models.FromDomainBooking(b), nil
	})
}

// DaySchedule возвращает подтвержденные, ожидающие и заблокированные слоты на дату
func (e *Engine) DaySchedule(ctx context.Context, date string) (*models.DayScheduleResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	return do(e, ctx, "day_schedule", func(ctx context.Context, tx *txn) (*models.DayScheduleResponse, error) {
		type row struct {
			start types.TimeString
			entry models.DayEntry
		}
		rows := make([]row, 0)

		addBookings := func(bookings []*domain.Booking, kind string) {
			for _, b := range bookings {
				if b.Slot.Date != d {
					continue
				}
				rows = append(rows, row{start: b.Slot.Start, entry: models.DayEntry{
					Time:      b.Slot.Start.String(),
					TimeRange: b.TimeRange(),
					Kind:      kind,
					Booking:   models.FromDomainBooking(b),
				}})
			}
		}
		addBookings(e.store.ConfirmedList(), models.EntryConfirmed)
		addBookings(e.store.PendingList(), models.EntryPending)

		for _, slot := range e.store.BlockedList() {
			if slot.Date != d {
				continue
			}
			rows = append(rows, row{start: slot.Start, entry: models.DayEntry{
				Time:      slot.Start.String(),
				TimeRange: domain.TimeRange(slot.Start, 1),
				Kind:      models.EntryBlocked,
			}})
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].start.IsBefore(rows[j].start)
		})

		resp := &models.DayScheduleResponse{Date: d.String(), Entries: make([]models.DayEntry, 0, len(rows))}
		for _, r := range rows {
			resp.Entries = append(resp.Entries, r.entry)
		}
		return resp, nil
	})
}

// Upcoming возвращает подтвержденные записи, начинающиеся не раньше чем час назад
func (e *Engine) Upcoming(ctx context.Context) (*models.BookingListResponse, error) {
	return do(e, ctx, "upcoming", func(ctx context.Context, tx *txn) (*models.BookingListResponse, error) {
		from := e.now().Add(-upcomingWindow)

		bookings := make([]*domain.Booking, 0)
		for _, b := range e.store.ConfirmedList() {
			if b.Slot.StartsAt(e.opts.Location).Before(from) {
				continue
			}
			bookings = append(bookings, b)
		}
		return models.FromDomainBookingList(bookings), nil
	})
}
