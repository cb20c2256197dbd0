package get_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context) *models.ConfigResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
