package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/storagetest"
)

func slot(t *testing.T, date, start string) domain.Slot {
	t.Helper()
	s, err := domain.ParseSlot(date, start)
	require.NoError(t, err)
	return s
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, sb := storagetest.NewSQLite(t)
	repo := NewRepository(db, sb)

	loc := time.FixedZone("UTC+5", 5*60*60)
	created := time.Date(2026, time.February, 20, 12, 30, 0, 0, loc)
	from := slot(t, "2026-02-23", "15:00")

	confirmed := &domain.Booking{
		Status:          domain.StatusConfirmed,
		Slot:            slot(t, "2026-02-24", "10:00"),
		DurationSlots:   2,
		DurationMinutes: 60,
		CustomerID:      101,
		CustomerName:    "Ali",
		CustomerPhone:   "+998901234567",
		CustomerLang:    domain.LangUZ,
		ServiceIDs:      []string{"cut", "beard"},
		CreatedAt:       created,
	}
	pending := &domain.Booking{
		ID:              5,
		Status:          domain.StatusPending,
		Slot:            slot(t, "2026-02-25", "12:00"),
		DurationSlots:   1,
		DurationMinutes: 30,
		CustomerID:      102,
		CustomerName:    "Olim",
		CustomerPhone:   "+998",
		CustomerLang:    domain.LangRU,
		ServiceIDs:      []string{"cut"},
		CreatedAt:       created,
		RescheduledFrom: &from,
	}

	require.NoError(t, repo.SaveConfirmed(ctx, confirmed))
	require.NoError(t, repo.SavePending(ctx, pending))
	require.NoError(t, repo.SaveBlocked(ctx, slot(t, "2026-02-24", "15:00")))
	require.NoError(t, repo.SaveBlocked(ctx, slot(t, "2026-02-24", "15:00")))
	require.NoError(t, repo.SaveCustomer(ctx, &domain.CustomerProfile{CustomerID: 101, Name: "Ali", Phone: "+998901234567", Lang: domain.LangUZ}))

	data, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, data.Confirmed, 1)
	got := data.Confirmed[0]
	assert.Equal(t, confirmed.Slot, got.Slot)
	assert.Equal(t, confirmed.ServiceIDs, got.ServiceIDs)
	assert.True(t, confirmed.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.RescheduledFrom)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	require.Len(t, data.Pending, 1)
	assert.Equal(t, int64(5), data.Pending[0].ID)
	require.NotNil(t, data.Pending[0].RescheduledFrom)
	assert.Equal(t, from, *data.Pending[0].RescheduledFrom)

	assert.Equal(t, []domain.Slot{slot(t, "2026-02-24", "15:00")}, data.Blocked)
	require.Len(t, data.Customers, 1)
	assert.Equal(t, domain.LangUZ, data.Customers[0].Lang)
}

func TestRepository_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	db, sb := storagetest.NewSQLite(t)
	repo := NewRepository(db, sb)

	b := &domain.Booking{
		ID:            1,
		Slot:          slot(t, "2026-02-24", "10:00"),
		DurationSlots: 1,
		CustomerID:    7,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.SavePending(ctx, b))

	b.DurationSlots = 3
	require.NoError(t, repo.SavePending(ctx, b))

	data, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, data.Pending, 1)
	assert.Equal(t, 3, data.Pending[0].DurationSlots)

	require.NoError(t, repo.DeletePending(ctx, 1))
	require.NoError(t, repo.DeletePending(ctx, 1))
	require.NoError(t, repo.DeleteBlocked(ctx, slot(t, "2026-02-24", "10:00")))
	require.NoError(t, repo.DeleteConfirmed(ctx, slot(t, "2026-02-24", "10:00")))

	data, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Pending)
}
