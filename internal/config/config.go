package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDatabaseDSN = "SLOTBOOKING_DB_DSN"
	EnvProviderID  = "SLOTBOOKING_PROVIDER_ID"
	EnvNotifierURL = "SLOTBOOKING_NOTIFIER_URL"
)

// DriverMemory хранение только в памяти, без БД
const DriverMemory = "memory"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Notifier  NotifierConfig  `toml:"notifier"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Services  []ServiceConfig `toml:"services"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // sqlite | postgres | memory
	DSN             string `toml:"dsn"`
	Path            string `toml:"path"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры жизненного цикла записей
type BookingConfig struct {
	ProviderID            int64  `toml:"provider_id"`
	Timezone              string `toml:"timezone"`
	PendingTTLMinutes     int    `toml:"pending_ttl_minutes"`
	ReminderLeadMinutes   int    `toml:"reminder_lead_minutes"`
	HorizonDays           int    `toml:"horizon_days"`
	RehydrateGraceSeconds int    `toml:"rehydrate_grace_seconds"`
	SweepSpec             string `toml:"sweep_spec"`
}

// ScheduleConfig расписание по умолчанию, если в БД ничего не сохранено
// Дни недели: 0 - воскресенье, 6 - суббота
type ScheduleConfig struct {
	StartHour int   `toml:"start_hour"`
	EndHour   int   `toml:"end_hour"`
	WorkDays  []int `toml:"work_days"`
}

// NotifierConfig настройки шлюза уведомлений
type NotifierConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды
	QueueSize int    `toml:"queue_size"`
}

// RateLimitConfig ограничение частоты запросов одного пользователя
type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

// ServiceConfig услуга каталога
type ServiceConfig struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Minutes int    `toml:"minutes"`
	Price   int64  `toml:"price"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          sqlbuilder.DriverSQLite,
			Path:            "data/slotbooking.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slotbooking",
		},
		Booking: BookingConfig{
			Timezone:              "Asia/Tashkent",
			PendingTTLMinutes:     domain.DefaultPendingTTLMinutes,
			ReminderLeadMinutes:   domain.DefaultReminderLeadMinutes,
			HorizonDays:           domain.DefaultHorizonDays,
			RehydrateGraceSeconds: domain.DefaultRehydrateGraceSeconds,
			SweepSpec:             "@every 1m",
		},
		Schedule: ScheduleConfig{
			StartHour: domain.DefaultStartHour,
			EndHour:   domain.DefaultEndHour,
			WorkDays:  []int{1, 2, 3, 4, 5, 6},
		},
		Notifier: NotifierConfig{
			Timeout:   5,
			QueueSize: 256,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             10,
		},
	}
}

// Load загружает конфигурацию из TOML файла поверх значений по умолчанию,
// применяет переопределения из окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if dsn := os.Getenv(EnvDatabaseDSN); dsn != "" {
		c.Database.DSN = dsn
	}
	if url := os.Getenv(EnvNotifierURL); url != "" {
		c.Notifier.URL = url
	}
	if raw := os.Getenv(EnvProviderID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvProviderID, raw)
		}
		c.Booking.ProviderID = id
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case sqlbuilder.DriverSQLite:
		if c.Database.Path == "" && c.Database.DSN == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	case sqlbuilder.DriverPostgres:
		if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.DBName == "") {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Booking.ProviderID == 0 {
		return fmt.Errorf("%w: booking.provider_id is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.PendingTTLMinutes <= 0 || c.Booking.ReminderLeadMinutes <= 0 || c.Booking.HorizonDays <= 0 {
		return fmt.Errorf("%w: booking durations must be positive", ErrInvalidConfig)
	}
	if c.Booking.RehydrateGraceSeconds < 0 {
		return fmt.Errorf("%w: booking.rehydrate_grace_seconds must not be negative", ErrInvalidConfig)
	}

	if err := c.Schedule.ToDomain().Validate(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}

	if len(c.Services) == 0 {
		return fmt.Errorf("%w: at least one [[services]] entry is required", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Services))
	for _, s := range c.Services {
		if s.ID == "" || s.Minutes <= 0 || s.Price < 0 {
			return fmt.Errorf("%w: service %q must have an id, positive minutes and non-negative price", ErrInvalidConfig, s.ID)
		}
		// id хранится в списке через запятую
		if strings.Contains(s.ID, ",") {
			return fmt.Errorf("%w: service id %q must not contain a comma", ErrInvalidConfig, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate service id %q", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit values must not be negative", ErrInvalidConfig)
	}

	return nil
}

// ToDomain конвертирует расписание по умолчанию в domain модель
func (s ScheduleConfig) ToDomain() domain.ScheduleConfig {
	days := make([]time.Weekday, 0, len(s.WorkDays))
	for _, d := range s.WorkDays {
		days = append(days, time.Weekday(d))
	}
	return domain.ScheduleConfig{StartHour: s.StartHour, EndHour: s.EndHour, WorkDays: days}
}

// Catalogue строит каталог услуг
func (c *Config) Catalogue() domain.Catalogue {
	services := make([]domain.Service, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, domain.Service{ID: s.ID, Name: s.Name, Minutes: s.Minutes, Price: s.Price})
	}
	return domain.NewCatalogue(services)
}

// Location возвращает часовой пояс провайдера
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ToDatabase конвертирует настройки в параметры подключения
func (d DatabaseConfig) ToDatabase() database.Config {
	return database.Config{
		Driver:          d.Driver,
		DSN:             d.DSN,
		Path:            d.Path,
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		DBName:          d.DBName,
		SSLMode:         d.SSLMode,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: time.Duration(d.ConnMaxLifetime) * time.Second,
	}
}
