package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookingstore"
	"github.com/m04kA/SMC-SlotBooking/internal/service/timers"
	"github.com/m04kA/SMC-SlotBooking/pkg/clock"
)

// Options параметры жизненного цикла записей
type Options struct {
	ProviderID     int64
	Location       *time.Location
	PendingTTL     time.Duration
	ReminderLead   time.Duration
	RehydrateGrace time.Duration
	HorizonDays    int
	SweepSpec      string // cron выражение страховочной проверки просроченных заявок; пусто - отключено
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		Location:       time.UTC,
		PendingTTL:     domain.DefaultPendingTTLMinutes * time.Minute,
		ReminderLead:   domain.DefaultReminderLeadMinutes * time.Minute,
		RehydrateGrace: domain.DefaultRehydrateGraceSeconds * time.Second,
		HorizonDays:    domain.DefaultHorizonDays,
		SweepSpec:      "@every 1m",
	}
}

// Engine машина состояний записей
// Все команды (действия клиентов, провайдера и сработавшие таймеры) выполняются
// по одной в единственной горутине, поэтому проверка доступности и фиксация
// записи всегда происходят в одной критической секции.
type Engine struct {
	store     *bookingstore.Store
	schedule  ScheduleProvider
	catalogue domain.Catalogue
	notifier  Notifier
	metrics   Metrics
	clock     clock.Clock
	logger    Logger
	opts      Options

	timers *timers.Service
	cron   *cron.Cron

	cmds    chan command
	done    chan struct{}
	stopped chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	running   bool
	mu        sync.Mutex
}

type command struct {
	name string
	ctx  context.Context
	run  func(ctx context.Context, tx *txn)
}

// txn собирает уведомления команды; они отправляются после завершения мутации
type txn struct {
	notes []domain.Notification
}

func (t *txn) notify(n domain.Notification) {
	t.notes = append(t.notes, n)
}

// NewEngine создает движок бронирования
func NewEngine(
	store *bookingstore.Store,
	schedule ScheduleProvider,
	catalogue domain.Catalogue,
	notifier Notifier,
	metrics Metrics,
	clk clock.Clock,
	logger Logger,
	opts Options,
) *Engine {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	e := &Engine{
		store:     store,
		schedule:  schedule,
		catalogue: catalogue,
		notifier:  notifier,
		metrics:   metrics,
		clock:     clk,
		logger:    logger,
		opts:      opts,
		cmds:      make(chan command),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	e.timers = timers.NewService(clk, e.onTimer, logger)
	return e
}

// Start запускает цикл команд, восстанавливает таймеры из загруженного состояния
// и запускает страховочную проверку просроченных заявок.
// Хранилище должно быть загружено до вызова Start.
func (e *Engine) Start(ctx context.Context) error {
	var err error
	e.startOnce.Do(func() {
		e.mu.Lock()
		e.running = true
		e.mu.Unlock()

		go e.loop()

		_, err = do(e, ctx, "rehydrate", func(ctx context.Context, tx *txn) (struct{}, error) {
			e.rehydrate()
			return struct{}{}, nil
		})
		if err != nil {
			return
		}

		if e.opts.SweepSpec != "" {
			e.cron = cron.New()
			if _, cerr := e.cron.AddFunc(e.opts.SweepSpec, func() {
				if _, serr := e.SweepExpired(context.Background()); serr != nil && !errors.Is(serr, ErrStopped) {
					e.logger.Error("Sweep: %v", serr)
				}
			}); cerr != nil {
				err = fmt.Errorf("%w: invalid sweep spec %q: %v", ErrInvalidInput, e.opts.SweepSpec, cerr)
				return
			}
			e.cron.Start()
		}

		e.logger.Info("Engine: started, armed timers=%d", e.timers.Len())
	})
	return err
}

// Stop останавливает цикл команд и все таймеры
// Команда, выполняющаяся в момент вызова, завершается.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.cron != nil {
			<-e.cron.Stop().Done()
		}
		close(e.done)

		e.mu.Lock()
		running := e.running
		e.mu.Unlock()
		if running {
			<-e.stopped
		}

		e.timers.Stop()
		e.logger.Info("Engine: stopped")
	})
}

func (e *Engine) loop() {
	defer close(e.stopped)
	for {
		select {
		case cmd := <-e.cmds:
			e.run(cmd)
		case <-e.done:
			return
		}
	}
}

func (e *Engine) run(cmd command) {
	tx := &txn{}
	// начатая команда доводится до конца, даже если вызывающий ушел
	cmd.run(context.WithoutCancel(cmd.ctx), tx)

	for _, n := range tx.notes {
		e.notifier.Notify(n)
	}

	pending, confirmed := e.store.Counts()
	e.metrics.SetBookingCounts(pending, confirmed)
	e.metrics.SetArmedTimers(e.timers.Len())
}

// do выполняет fn внутри цикла команд и возвращает ее результат
func do[T any](e *Engine, ctx context.Context, name string, fn func(ctx context.Context, tx *txn) (T, error)) (T, error) {
	var zero T

	type result struct {
		value T
		err   error
	}
	resCh := make(chan result, 1)

	cmd := command{
		name: name,
		ctx:  ctx,
		run: func(ctx context.Context, tx *txn) {
			v, err := fn(ctx, tx)
			resCh <- result{value: v, err: err}
		},
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	select {
	case e.cmds <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-e.done:
		return zero, ErrStopped
	}

	// принятая команда выполняется до конца, отмена ctx на нее уже не влияет
	r := <-resCh
	return r.value, r.err
}

// onTimer ставит сработавший таймер в очередь команд
func (e *Engine) onTimer(f timers.Fired) {
	cmd := command{
		name: "timer:" + f.Key,
		ctx:  context.Background(),
		run: func(ctx context.Context, tx *txn) {
			e.handleTimer(ctx, tx, f)
		},
	}

	select {
	case e.cmds <- cmd:
	case <-e.done:
	}
}

func (e *Engine) handleTimer(ctx context.Context, tx *txn, f timers.Fired) {
	switch f.Payload.Kind {
	case timers.KindExpiry:
		e.expirePending(ctx, tx, f.Payload.BookingID)
	case timers.KindCustomerReminder, timers.KindProviderReminder:
		e.sendReminder(tx, f.Payload.Kind, f.Payload.Slot)
	default:
		e.logger.Warn("Timers: unknown timer %s", f.Key)
	}
}

// observe учитывает исход команды в метриках
func (e *Engine) observe(event string, err error) {
	e.metrics.Transition(event, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, ErrDuplicateActiveBooking):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

func (e *Engine) now() time.Time {
	return e.clock.Now().In(e.opts.Location)
}
