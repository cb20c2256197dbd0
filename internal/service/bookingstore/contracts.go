package bookingstore

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Persister долговременное хранилище записей.
// Реализуется репозиториями из infra/storage.
type Persister interface {
	LoadAll(ctx context.Context) (*Data, error)

	SaveConfirmed(ctx context.Context, booking *domain.Booking) error
	DeleteConfirmed(ctx context.Context, slot domain.Slot) error
	SavePending(ctx context.Context, booking *domain.Booking) error
	DeletePending(ctx context.Context, id int64) error
	SaveBlocked(ctx context.Context, slot domain.Slot) error
	DeleteBlocked(ctx context.Context, slot domain.Slot) error
	SaveCustomer(ctx context.Context, profile *domain.CustomerProfile) error
}

// Data полный снимок хранилища, читаемый при старте
type Data struct {
	Confirmed []*domain.Booking
	Pending   []*domain.Booking
	Blocked   []domain.Slot
	Customers []*domain.CustomerProfile
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики ошибок записи
type Metrics interface {
	PersistenceError(operation string)
}
