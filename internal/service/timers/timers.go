package timers

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/clock"
)

// Kind тип отложенного события
type Kind int

const (
	KindExpiry Kind = iota + 1
	KindCustomerReminder
	KindProviderReminder
)

func (k Kind) String() string {
	switch k {
	case KindExpiry:
		return "expiry"
	case KindCustomerReminder:
		return "reminder:customer"
	case KindProviderReminder:
		return "reminder:provider"
	default:
		return "unknown"
	}
}

// Payload данные, которые таймер доставляет при срабатывании
type Payload struct {
	Kind      Kind
	BookingID int64       // для KindExpiry
	Slot      domain.Slot // для напоминаний
}

// Fired событие сработавшего таймера
type Fired struct {
	Key     string
	Payload Payload
}

// ExpiryKey ключ таймера истечения ожидающей записи
func ExpiryKey(bookingID int64) string {
	return fmt.Sprintf("%s:%d", KindExpiry, bookingID)
}

// ReminderKey ключ таймера напоминания о подтвержденной записи
func ReminderKey(kind Kind, slot domain.Slot) string {
	return fmt.Sprintf("%s:%s", kind, slot.Key())
}

type entry struct {
	timer   clock.Timer
	gen     uint64
	fireAt  time.Time
	payload Payload
}

// Service планирует одноразовые отложенные события по ключу.
// Сработавший таймер не вызывает бизнес-логику напрямую, а передает событие в sink,
// который ставит его в общую очередь команд.
type Service struct {
	clock  clock.Clock
	sink   func(Fired)
	logger Logger

	mu      sync.Mutex
	gen     uint64
	entries map[string]*entry
	stopped bool
}

// NewService создает сервис таймеров
func NewService(clk clock.Clock, sink func(Fired), logger Logger) *Service {
	return &Service{
		clock:   clk,
		sink:    sink,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// ScheduleOnce планирует событие на момент fireAt.
// Ранее запланированный таймер с тем же ключом заменяется.
// Момент в прошлом приводит к срабатыванию без задержки.
func (s *Service) ScheduleOnce(key string, fireAt time.Time, payload Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if prev, ok := s.entries[key]; ok {
		prev.timer.Stop()
	}

	s.gen++
	gen := s.gen
	e := &entry{gen: gen, fireAt: fireAt, payload: payload}
	e.timer = s.clock.AfterFunc(fireAt.Sub(s.clock.Now()), func() {
		s.fire(key, gen)
	})
	s.entries[key] = e

	s.logger.Info("Timers: scheduled %s at %s", key, fireAt.Format(time.RFC3339))
}

// Cancel отменяет таймер. Отмена несуществующего или уже сработавшего таймера не ошибка.
// Возвращает true, если таймер был взведен.
func (s *Service) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.entries, key)

	s.logger.Info("Timers: cancelled %s", key)
	return true
}

// Scheduled возвращает момент срабатывания и данные взведенного таймера
func (s *Service) Scheduled(key string) (time.Time, Payload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, Payload{}, false
	}
	return e.fireAt, e.payload, true
}

// Len возвращает количество взведенных таймеров
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop отменяет все таймеры; последующие ScheduleOnce игнорируются
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, key)
	}
	s.stopped = true
}

// fire доставляет событие ровно один раз: запись удаляется под блокировкой,
// а колбэк устаревшего поколения (таймер был заменен) ничего не делает.
func (s *Service) fire(key string, gen uint64) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.entries, key)
	s.mu.Unlock()

	s.sink(Fired{Key: key, Payload: e.payload})
}
