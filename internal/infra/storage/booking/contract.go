package booking

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// DB соединение с поддержкой транзакций через context
// Поддерживает *dbmetrics.DB
type DB interface {
	DBExecutor
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
