package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type migration struct {
	Name    string
	Content string
}

// RunMigrations применяет еще не примененные миграции в порядке имен файлов
// Возвращает количество примененных миграций
func RunMigrations(ctx context.Context, db *sql.DB, sb squirrel.StatementBuilderType, logger Logger) (int, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			name       TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return 0, fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db, sb)
	if err != nil {
		return 0, fmt.Errorf("getting applied migrations: %w", err)
	}

	migrations, err := migrationFiles()
	if err != nil {
		return 0, fmt.Errorf("reading migration files: %w", err)
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Name] {
			continue
		}

		logger.Info("Applying migration: %s", m.Name)
		if err := applyMigration(ctx, db, sb, m); err != nil {
			return count, fmt.Errorf("applying migration %s: %w", m.Name, err)
		}
		count++
	}

	return count, nil
}

func appliedMigrations(ctx context.Context, db *sql.DB, sb squirrel.StatementBuilderType) (map[string]bool, error) {
	query, args, err := sb.Select("name").From("_migrations").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}

	return applied, rows.Err()
}

func migrationFiles() ([]migration, error) {
	var migrations []migration

	err := fs.WalkDir(migrationsFS, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		content, err := migrationsFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		migrations = append(migrations, migration{Name: filepath.Base(path), Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Name < migrations[j].Name })
	return migrations, nil
}

func applyMigration(ctx context.Context, db *sql.DB, sb squirrel.StatementBuilderType, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Content); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}

	query, args, err := sb.Insert("_migrations").
		Columns("name", "applied_at").
		Values(m.Name, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}
