package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/config"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookingstore"
	configService "github.com/m04kA/SMC-SlotBooking/internal/service/config"
	"github.com/m04kA/SMC-SlotBooking/internal/websocket"
	"github.com/m04kA/SMC-SlotBooking/pkg/clock"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

type ServeCmd struct{}

// storage постоянное хранилище выбранного драйвера
type storage struct {
	persister bookingstore.Persister
	config    configService.ConfigRepository
	db        *sql.DB
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("Database driver is %q: bookings are lost on restart", config.DriverMemory)
		return &storage{
			persister: bookingstore.NewMemoryPersister(nil),
			config:    configRepo.NewMemoryRepository(),
		}, nil
	}

	db, err := database.Open(ctx, cfg.ToDatabase())
	if err != nil {
		return nil, err
	}

	sb, err := sqlbuilder.New(cfg.Driver)
	if err != nil {
		db.Close()
		return nil, err
	}

	applied, err := database.RunMigrations(ctx, db, sb, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Connected to %s database, migrations applied: %d", cfg.Driver, applied)

	wrapped := dbmetrics.Wrap(db, m)
	return &storage{
		persister: bookingRepo.NewRepository(wrapped, sb),
		config:    configRepo.NewRepository(wrapped, sb),
		db:        db,
	}, nil
}

func (c *ServeCmd) Run(app *appContext) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-SlotBooking...")
	log.Info("Configuration loaded from %s", app.ConfigPath)

	// Метрики собираются всегда, endpoint публикуется только если включен
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancelStart := context.WithTimeout(ctx, 30*time.Second)
	defer cancelStart()

	store, err := openStorage(startCtx, cfg.Database, metricsCollector, log)
	if err != nil {
		return err
	}
	defer store.Close()

	// Расписание: сохраненное в БД или значения по умолчанию из файла
	configSvc := configService.NewService(store.config, cfg.Schedule.ToDomain(), log)
	if err := configSvc.Load(startCtx); err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	bookingStore := bookingstore.New(store.persister, log, metricsCollector)
	if err := bookingStore.Load(startCtx); err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	// Уведомления: внешний шлюз (или лог) и websocket лента мастера
	var sender notifier.Sender
	if cfg.Notifier.URL != "" {
		sender = notifier.NewClient(cfg.Notifier.URL, time.Duration(cfg.Notifier.Timeout)*time.Second, log)
		log.Info("Notifier gateway: %s (timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		sender = notifier.NewLogSender(log)
		log.Warn("Notifier URL is empty: notifications are only logged")
	}
	dispatcher := notifier.NewDispatcher(sender, cfg.Notifier.QueueSize, time.Duration(cfg.Notifier.Timeout)*time.Second, metricsCollector, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := websocket.NewHub(log)
	go hub.Run(hubCtx)

	feed := websocket.NewProviderFeed(hub, cfg.Booking.ProviderID, log)

	engine := bookings.NewEngine(
		bookingStore,
		configSvc,
		cfg.Catalogue(),
		notifier.Multi{dispatcher, feed},
		metricsCollector,
		clock.Real{},
		log,
		bookings.Options{
			ProviderID:     cfg.Booking.ProviderID,
			Location:       cfg.Location(),
			PendingTTL:     time.Duration(cfg.Booking.PendingTTLMinutes) * time.Minute,
			ReminderLead:   time.Duration(cfg.Booking.ReminderLeadMinutes) * time.Minute,
			RehydrateGrace: time.Duration(cfg.Booking.RehydrateGraceSeconds) * time.Second,
			HorizonDays:    cfg.Booking.HorizonDays,
			SweepSpec:      cfg.Booking.SweepSpec,
		},
	)
	if err := engine.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start booking engine: %w", err)
	}
	defer engine.Stop()

	router := newRouter(cfg, routerDeps{
		engine:   engine,
		schedule: configSvc,
		hub:      hub,
		metrics:  metricsCollector,
		log:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			log.Error("Server failed: %v", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// engine, dispatcher, hub и БД закрываются отложенными вызовами в обратном порядке
	log.Info("Server stopped gracefully")
	return nil
}
