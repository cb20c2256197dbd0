package bookings

import (
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Параметры шаблонов уведомлений
const (
	paramDate            = "date"
	paramTime            = "time"
	paramTimeRange       = "time_range"
	paramName            = "name"
	paramPhone           = "phone"
	paramServices        = "services"
	paramDurationMinutes = "duration_minutes"
	paramPrice           = "price"
	paramBookingID       = "booking_id"
	paramOldDate         = "old_date"
	paramOldTime         = "old_time"
	paramOldTimeRange    = "old_time_range"
)

func (e *Engine) bookingParams(b *domain.Booking) map[string]string {
	params := map[string]string{
		paramDate:            b.Slot.Date.String(),
		paramTime:            b.Slot.Start.String(),
		paramTimeRange:       b.TimeRange(),
		paramName:            b.CustomerName,
		paramPhone:           b.CustomerPhone,
		paramDurationMinutes: strconv.Itoa(b.DurationMinutes),
	}

	names := make([]string, 0, len(b.ServiceIDs))
	var price int64
	for _, id := range b.ServiceIDs {
		svc, ok := e.catalogue[id]
		if !ok {
			names = append(names, id)
			continue
		}
		names = append(names, svc.Name)
		price += svc.Price
	}
	params[paramServices] = strings.Join(names, ", ")
	params[paramPrice] = strconv.FormatInt(price, 10)

	if b.IsPending() {
		params[paramBookingID] = strconv.FormatInt(b.ID, 10)
	}
	if b.RescheduledFrom != nil {
		params[paramOldDate] = b.RescheduledFrom.Date.String()
		params[paramOldTime] = b.RescheduledFrom.Start.String()
	}
	return params
}

func (e *Engine) toCustomer(tx *txn, b *domain.Booking, template string) {
	lang := b.CustomerLang
	if !domain.IsSupportedLang(lang) {
		lang = domain.DefaultLang
	}
	tx.notify(domain.Notification{
		Recipient: b.CustomerID,
		Lang:      lang,
		Template:  template,
		Params:    e.bookingParams(b),
	})
}

func (e *Engine) toProvider(tx *txn, template string, params map[string]string) {
	tx.notify(domain.Notification{
		Recipient: e.opts.ProviderID,
		Lang:      domain.DefaultLang,
		Template:  template,
		Params:    params,
	})
}
