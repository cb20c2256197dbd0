package config

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// MemoryRepository хранит расписание в памяти процесса (driver = "memory")
type MemoryRepository struct {
	mu  sync.Mutex
	cfg *domain.ScheduleConfig
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(_ context.Context) (*domain.ScheduleConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return nil, ErrConfigNotFound
	}
	cfg := r.cfg.Clone()
	return &cfg, nil
}

func (r *MemoryRepository) Save(_ context.Context, cfg *domain.ScheduleConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := cfg.Clone()
	r.cfg = &c
	return nil
}
