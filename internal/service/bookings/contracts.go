package bookings

import (
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// ScheduleProvider источник текущего расписания
type ScheduleProvider interface {
	Current() domain.ScheduleConfig
}

// Notifier доставка уведомлений
// Notify не должен блокироваться: ошибки доставки логируются получателем и не влияют на состояние записей
type Notifier interface {
	Notify(n domain.Notification)
}

// Metrics метрики движка бронирования
type Metrics interface {
	Transition(event, outcome string)
	SetBookingCounts(pending, confirmed int)
	SetArmedTimers(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
