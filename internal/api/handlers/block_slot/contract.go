package block_slot

import (
	"context"
)

type BookingService interface {
	BlockSlot(ctx context.Context, date, start string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
