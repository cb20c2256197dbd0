package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Результаты доставки для метрик
const (
	ResultDelivered = "delivered"
	ResultFailed    = "failed"
	ResultDropped   = "dropped"
)

// Dispatcher очередь уведомлений с фоновым обработчиком
// Notify никогда не блокируется: при переполненной очереди уведомление отбрасывается.
type Dispatcher struct {
	sender  Sender
	queue   chan domain.Notification
	timeout time.Duration
	metrics Metrics
	log     Logger

	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher создает очередь уведомлений
func NewDispatcher(sender Sender, queueSize int, timeout time.Duration, metrics Metrics, log Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		sender:  sender,
		queue:   make(chan domain.Notification, queueSize),
		timeout: timeout,
		metrics: metrics,
		log:     log,
	}
}

// Start запускает обработчик очереди
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.worker()
	})
}

// Stop закрывает очередь и дожидается отправки уже принятых уведомлений
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Notify ставит уведомление в очередь
func (d *Dispatcher) Notify(n domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.metrics.Notification(n.Template, ResultDropped)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.metrics.Notification(n.Template, ResultDropped)
		d.log.Warn("Notifier: queue full, dropping %s for %d", n.Template, n.Recipient)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		d.metrics.Notification(n.Template, ResultFailed)
		d.log.Error("Notifier: failed to deliver %s to %d: %v", n.Template, n.Recipient, err)
		return
	}
	d.metrics.Notification(n.Template, ResultDelivered)
}

// Notifier получатель уведомлений
type Notifier interface {
	Notify(n domain.Notification)
}

// Multi рассылает уведомление всем получателям по порядку
type Multi []Notifier

func (m Multi) Notify(n domain.Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}
