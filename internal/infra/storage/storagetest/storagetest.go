// Package storagetest поднимает временную sqlite БД с примененными миграциями для тестов репозиториев.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

// NewSQLite возвращает обернутое соединение и builder для sqlite в t.TempDir()
func NewSQLite(t *testing.T) (*dbmetrics.DB, squirrel.StatementBuilderType) {
	t.Helper()
	ctx := context.Background()

	raw, err := database.Open(ctx, database.Config{
		Driver: sqlbuilder.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "slots.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	sb, err := sqlbuilder.New(sqlbuilder.DriverSQLite)
	require.NoError(t, err)

	_, err = database.RunMigrations(ctx, raw, sb, logger.NewNop())
	require.NoError(t, err)

	return dbmetrics.Wrap(raw, nil), sb
}
