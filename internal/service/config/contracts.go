package config

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// ConfigRepository интерфейс репозитория расписания
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Save(ctx context.Context, config *domain.ScheduleConfig) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
