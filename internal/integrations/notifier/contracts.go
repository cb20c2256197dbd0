package notifier

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Sender доставляет одно уведомление
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Metrics учет результатов доставки
type Metrics interface {
	Notification(template, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
