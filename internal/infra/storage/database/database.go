// Package database открывает соединение с БД (sqlite или postgres)
// и применяет встроенные миграции.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

// Config параметры подключения
type Config struct {
	Driver string
	DSN    string // если задан, остальные параметры подключения игнорируются

	Path string // sqlite

	Host     string // postgres
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DataSourceName собирает DSN для драйвера
func (c Config) DataSourceName() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	switch c.Driver {
	case sqlbuilder.DriverSQLite:
		if c.Path == "" {
			return "", fmt.Errorf("database: sqlite path is empty")
		}
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", nil
	case sqlbuilder.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:   c.DBName,
		}
		q := u.Query()
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", c.Driver)
	}
}

// Open открывает и проверяет соединение
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn, err := cfg.DataSourceName()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == sqlbuilder.DriverSQLite && cfg.DSN == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("database: creating directory: %w", err)
		}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	// sqlite допускает одного писателя; все записи и так сериализованы
	if cfg.Driver == sqlbuilder.DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}
