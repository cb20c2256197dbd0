package config

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	configRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/config"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
)

// Service сервис расписания провайдера
// Держит текущую конфигурацию в памяти; изменения сначала сохраняются в БД,
// затем атомарно подменяют текущее значение
type Service struct {
	configRepo ConfigRepository
	defaults   domain.ScheduleConfig
	logger     Logger

	mu      sync.RWMutex
	current domain.ScheduleConfig
}

// NewService создает новый экземпляр сервиса расписания
func NewService(configRepo ConfigRepository, defaults domain.ScheduleConfig, logger Logger) *Service {
	defaults.WorkDays = domain.NormalizeWorkDays(defaults.WorkDays)
	return &Service{
		configRepo: configRepo,
		defaults:   defaults,
		logger:     logger,
		current:    defaults.Clone(),
	}
}

// Load читает сохраненное расписание; если его нет - используются значения по умолчанию
func (s *Service) Load(ctx context.Context) error {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("Load: repository error: %v", err)
			return fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
		}
		if err := s.defaults.Validate(); err != nil {
			return fmt.Errorf("%w: defaults: %v", ErrConfigInvalid, err)
		}
		s.logger.Info("Load: no persisted schedule, using defaults %d-%d", s.defaults.StartHour, s.defaults.EndHour)
		s.set(s.defaults)
		return nil
	}

	cfg.WorkDays = domain.NormalizeWorkDays(cfg.WorkDays)
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Load: persisted schedule is invalid (%v), using defaults", err)
		s.set(s.defaults)
		return nil
	}

	s.logger.Info("Load: schedule %d-%d, work days %v", cfg.StartHour, cfg.EndHour, cfg.WorkDays)
	s.set(*cfg)
	return nil
}

// Current возвращает копию текущего расписания
func (s *Service) Current() domain.ScheduleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Get возвращает текущее расписание
func (s *Service) Get(_ context.Context) *models.ConfigResponse {
	return models.FromDomainConfig(s.Current())
}

// Update частично обновляет расписание
// Итоговая конфигурация валидируется целиком; при ошибке предыдущее значение не меняется
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Update: updating schedule")

	// 1. Применяем изменения к копии
	next := s.current.Clone()
	req.ApplyToConfig(&next)
	next.WorkDays = domain.NormalizeWorkDays(next.WorkDays)

	// 2. Валидируем результат
	if err := next.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// 3. Сохраняем и подменяем
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("Update: schedule is now %d-%d, work days %v", next.StartHour, next.EndHour, next.WorkDays)
	return models.FromDomainConfig(next), nil
}

// ToggleWorkDay включает или выключает рабочий день
// Выключить последний рабочий день нельзя
func (s *Service) ToggleWorkDay(ctx context.Context, day time.Weekday) (*models.ConfigResponse, error) {
	if day < time.Sunday || day > time.Saturday {
		return nil, fmt.Errorf("%w: unknown weekday %d", ErrInvalidInput, day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if next.IsWorkDay(day) {
		if len(next.WorkDays) == 1 {
			s.logger.Warn("ToggleWorkDay: refusing to remove the last work day %s", day)
			return nil, fmt.Errorf("%w: at least one work day is required", ErrConfigInvalid)
		}
		days := make([]time.Weekday, 0, len(next.WorkDays)-1)
		for _, d := range next.WorkDays {
			if d != day {
				days = append(days, d)
			}
		}
		next.WorkDays = days
	} else {
		next.WorkDays = domain.NormalizeWorkDays(append(next.WorkDays, day))
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("ToggleWorkDay: %s toggled, work days %v", day, next.WorkDays)
	return models.FromDomainConfig(next), nil
}

// commit сохраняет конфигурацию и подменяет текущую; вызывается под s.mu
func (s *Service) commit(ctx context.Context, next domain.ScheduleConfig) error {
	if err := s.configRepo.Save(ctx, &next); err != nil {
		s.logger.Error("commit: repository error: %v", err)
		return fmt.Errorf("%w: commit - repository error: %v", ErrInternal, err)
	}
	s.current = next.Clone()
	return nil
}

func (s *Service) set(cfg domain.ScheduleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg.Clone()
}
