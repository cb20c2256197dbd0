package main

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

type MigrateCmd struct {
	Timeout time.Duration `help:"Ограничение времени на миграции." default:"1m"`
}

func (c *MigrateCmd) Run(app *appContext) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("database.driver is %q, nothing to migrate", config.DriverMemory)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database.ToDatabase())
	if err != nil {
		return err
	}
	defer db.Close()

	sb, err := sqlbuilder.New(cfg.Database.Driver)
	if err != nil {
		return err
	}

	applied, err := database.RunMigrations(ctx, db, sb, log)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Migrations applied: %d", applied)
	return nil
}
