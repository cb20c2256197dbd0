package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	configRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/config"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/ptr"
)

type fakeRepo struct {
	saved *domain.ScheduleConfig
	err   error
}

func (r *fakeRepo) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	if r.saved == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	c := r.saved.Clone()
	return &c, nil
}

func (r *fakeRepo) Save(_ context.Context, c *domain.ScheduleConfig) error {
	if r.err != nil {
		return r.err
	}
	saved := c.Clone()
	r.saved = &saved
	return nil
}

func newService(t *testing.T, repo *fakeRepo) *Service {
	t.Helper()
	s := NewService(repo, domain.DefaultScheduleConfig(), logger.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoad_Defaults(t *testing.T) {
	s := newService(t, &fakeRepo{})
	cfg := s.Current()
	assert.Equal(t, 9, cfg.StartHour)
	assert.Equal(t, 18, cfg.EndHour)
	assert.Len(t, cfg.WorkDays, 6)
	assert.False(t, cfg.IsWorkDay(time.Sunday))
}

func TestLoad_Persisted(t *testing.T) {
	repo := &fakeRepo{saved: &domain.ScheduleConfig{StartHour: 10, EndHour: 20, WorkDays: []time.Weekday{time.Sunday}}}
	s := newService(t, repo)
	assert.Equal(t, 10, s.Current().StartHour)
	assert.True(t, s.Current().IsWorkDay(time.Sunday))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	s := newService(t, repo)

	resp, err := s.Update(ctx, &models.UpdateConfigRequest{StartHour: ptr.Ptr(8), WorkDays: &[]int{5, 1, 3}})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.StartHour)
	assert.Equal(t, []int{1, 3, 5}, resp.WorkDays)
	require.NotNil(t, repo.saved)
	assert.Equal(t, 8, repo.saved.StartHour)
}

func TestUpdate_RejectsInvalidAndKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	s := newService(t, &fakeRepo{})
	before := s.Current()

	cases := []*models.UpdateConfigRequest{
		{StartHour: ptr.Ptr(18)},
		{StartHour: ptr.Ptr(12), EndHour: ptr.Ptr(10)},
		{StartHour: ptr.Ptr(4)},
		{EndHour: ptr.Ptr(24)},
		{WorkDays: &[]int{}},
		{WorkDays: &[]int{9}},
	}
	for _, req := range cases {
		_, err := s.Update(ctx, req)
		assert.ErrorIs(t, err, ErrConfigInvalid)
	}
	assert.Equal(t, before, s.Current())
}

func TestUpdate_PersistFailureKeepsPrevious(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(t, repo)
	repo.err = errors.New("db down")

	_, err := s.Update(context.Background(), &models.UpdateConfigRequest{StartHour: ptr.Ptr(10)})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 9, s.Current().StartHour)
}

func TestToggleWorkDay(t *testing.T) {
	ctx := context.Background()
	s := newService(t, &fakeRepo{})

	resp, err := s.ToggleWorkDay(ctx, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, resp.WorkDays)

	resp, err = s.ToggleWorkDay(ctx, time.Monday)
	require.NoError(t, err)
	assert.NotContains(t, resp.WorkDays, 1)

	_, err = s.ToggleWorkDay(ctx, time.Weekday(8))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleWorkDay_LastDayIsKept(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{saved: &domain.ScheduleConfig{StartHour: 9, EndHour: 18, WorkDays: []time.Weekday{time.Friday}}}
	s := newService(t, repo)

	_, err := s.ToggleWorkDay(ctx, time.Friday)
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Equal(t, []time.Weekday{time.Friday}, s.Current().WorkDays)
}
