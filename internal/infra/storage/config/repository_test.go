package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/storagetest"
)

func TestRepository_GetSave(t *testing.T) {
	ctx := context.Background()
	db, sb := storagetest.NewSQLite(t)
	repo := NewRepository(db, sb)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	cfg := domain.ScheduleConfig{StartHour: 10, EndHour: 20, WorkDays: []time.Weekday{time.Sunday, time.Wednesday}}
	require.NoError(t, repo.Save(ctx, &cfg))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)

	cfg.EndHour = 21
	require.NoError(t, repo.Save(ctx, &cfg))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, got.EndHour)
}

func TestMemoryRepository_GetSave(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	cfg := domain.ScheduleConfig{StartHour: 9, EndHour: 18, WorkDays: []time.Weekday{time.Monday}}
	require.NoError(t, repo.Save(ctx, &cfg))

	// изменения исходного значения не влияют на сохраненное
	cfg.WorkDays[0] = time.Friday

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday}, got.WorkDays)
}
