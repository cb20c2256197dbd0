package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

const (
	tableScheduleConfig = "schedule_config"

	// расписание хранится одной строкой
	singletonID = 1
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписания провайдера
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// Get возвращает сохраненное расписание или ErrConfigNotFound
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	query, args, err := r.sb.Select("start_hour", "end_hour", "work_days").
		From(tableScheduleConfig).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg      domain.ScheduleConfig
		workDays string
	)
	err = dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&cfg.StartHour, &cfg.EndHour, &workDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: Get - execute select: %v", ErrExecQuery, err)
	}

	cfg.WorkDays, err = parseWorkDays(workDays)
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrScanRow, err)
	}

	return &cfg, nil
}

// Save сохраняет расписание, заменяя предыдущее
func (r *Repository) Save(ctx context.Context, cfg *domain.ScheduleConfig) error {
	insert := r.sb.Insert(tableScheduleConfig).
		Columns("id", "start_hour", "end_hour", "work_days", "updated_at").
		Values(singletonID, cfg.StartHour, cfg.EndHour, formatWorkDays(cfg.WorkDays), time.Now().UTC().Format(time.RFC3339))

	query, args, err := sqlbuilder.Upsert(insert, "id", "start_hour", "end_hour", "work_days", "updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// formatWorkDays кодирует дни недели как "1,2,3" (0 = воскресенье)
func formatWorkDays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func parseWorkDays(s string) ([]time.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("work_days %q: %w", s, err)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
