package toggle_work_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
)

type ConfigService interface {
	ToggleWorkDay(ctx context.Context, day time.Weekday) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
