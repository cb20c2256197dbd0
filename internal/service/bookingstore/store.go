package bookingstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/availability"
)

// Store авторитетное in-memory состояние записей.
// Каждая мутация сначала применяется к памяти, затем синхронно пишется в Persister.
// Ошибка записи логируется и не откатывает мутацию: живость системы важнее
// строгой атомарности долговременного хранения.
type Store struct {
	persister Persister
	logger    Logger
	metrics   Metrics

	mu        sync.RWMutex
	confirmed map[domain.Slot]*domain.Booking
	pending   map[int64]*domain.Booking
	blocked   map[domain.Slot]struct{}
	customers map[int64]*domain.CustomerProfile
	lastID    int64
}

// New создает пустое хранилище
func New(persister Persister, logger Logger, metrics Metrics) *Store {
	return &Store{
		persister: persister,
		logger:    logger,
		metrics:   metrics,
		confirmed: make(map[domain.Slot]*domain.Booking),
		pending:   make(map[int64]*domain.Booking),
		blocked:   make(map[domain.Slot]struct{}),
		customers: make(map[int64]*domain.CustomerProfile),
	}
}

// Load полностью загружает состояние из Persister.
// Счетчик идентификаторов восстанавливается как максимум существующих.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.persister.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("bookingstore: Load - LoadAll: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range data.Confirmed {
		b.Status = domain.StatusConfirmed
		b.ID = 0
		s.confirmed[b.Slot] = b
	}
	for _, b := range data.Pending {
		b.Status = domain.StatusPending
		s.pending[b.ID] = b
		if b.ID > s.lastID {
			s.lastID = b.ID
		}
	}
	for _, slot := range data.Blocked {
		s.blocked[slot] = struct{}{}
	}
	for _, p := range data.Customers {
		s.customers[p.CustomerID] = p
	}

	s.logger.Info("BookingStore: loaded confirmed=%d, pending=%d, blocked=%d, customers=%d, last_id=%d",
		len(s.confirmed), len(s.pending), len(s.blocked), len(s.customers), s.lastID)
	return nil
}

// NextID выделяет новый идентификатор ожидающей записи; идентификаторы не переиспользуются
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID
}

// Snapshot возвращает снимок для калькулятора доступности
func (s *Store) Snapshot(cfg domain.ScheduleConfig) availability.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := availability.Snapshot{
		Config:    cfg,
		Confirmed: make([]*domain.Booking, 0, len(s.confirmed)),
		Pending:   make([]*domain.Booking, 0, len(s.pending)),
		Blocked:   make([]domain.Slot, 0, len(s.blocked)),
	}
	for _, b := range s.confirmed {
		snap.Confirmed = append(snap.Confirmed, b.Clone())
	}
	for _, b := range s.pending {
		snap.Pending = append(snap.Pending, b.Clone())
	}
	for slot := range s.blocked {
		snap.Blocked = append(snap.Blocked, slot)
	}
	return snap
}

// Confirmed возвращает копию подтвержденной записи в слоте
func (s *Store) Confirmed(slot domain.Slot) (*domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.confirmed[slot]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Pending возвращает копию ожидающей записи
func (s *Store) Pending(id int64) (*domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.pending[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// PendingAt возвращает ожидающую запись, начинающуюся в слоте
func (s *Store) PendingAt(slot domain.Slot) (*domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.sortedPending() {
		if b.Slot == slot {
			return b.Clone(), true
		}
	}
	return nil, false
}

// ConfirmedList возвращает подтвержденные записи в хронологическом порядке
func (s *Store) ConfirmedList() []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Booking, 0, len(s.confirmed))
	for _, b := range s.confirmed {
		out = append(out, b.Clone())
	}
	sortBySlot(out)
	return out
}

// PendingList возвращает ожидающие записи в порядке идентификаторов
func (s *Store) PendingList() []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sorted := s.sortedPending()
	out := make([]*domain.Booking, len(sorted))
	for i, b := range sorted {
		out[i] = b.Clone()
	}
	return out
}

// BlockedList возвращает заблокированные слоты в хронологическом порядке
func (s *Store) BlockedList() []domain.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Slot, 0, len(s.blocked))
	for slot := range s.blocked {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// IsBlocked проверяет, заблокирован ли слот
func (s *Store) IsBlocked(slot domain.Slot) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocked[slot]
	return ok
}

// ActiveBookingOf возвращает активную запись клиента: сначала подтвержденную, затем ожидающую
func (s *Store) ActiveBookingOf(customerID int64) (*domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	confirmed := make([]*domain.Booking, 0, len(s.confirmed))
	for _, b := range s.confirmed {
		confirmed = append(confirmed, b)
	}
	sortBySlot(confirmed)
	for _, b := range confirmed {
		if b.CustomerID == customerID {
			return b.Clone(), true
		}
	}
	for _, b := range s.sortedPending() {
		if b.CustomerID == customerID {
			return b.Clone(), true
		}
	}
	return nil, false
}

// Counts возвращает количество ожидающих и подтвержденных записей
func (s *Store) Counts() (pending, confirmed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending), len(s.confirmed)
}

// Customer возвращает копию профиля клиента
func (s *Store) Customer(id int64) (*domain.CustomerProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.customers[id]
	if !ok {
		return nil, false
	}
	c := *p
	return &c, true
}

// PutConfirmed сохраняет подтвержденную запись по ее слоту
func (s *Store) PutConfirmed(ctx context.Context, b *domain.Booking) {
	b = b.Clone()
	b.Status = domain.StatusConfirmed
	b.ID = 0

	s.mu.Lock()
	s.confirmed[b.Slot] = b
	s.mu.Unlock()

	s.persist(ctx, "save_confirmed", b.Slot.Key(), func(ctx context.Context) error {
		return s.persister.SaveConfirmed(ctx, b)
	})
}

// DeleteConfirmed удаляет подтвержденную запись и возвращает ее
func (s *Store) DeleteConfirmed(ctx context.Context, slot domain.Slot) (*domain.Booking, bool) {
	s.mu.Lock()
	b, ok := s.confirmed[slot]
	delete(s.confirmed, slot)
	s.mu.Unlock()

	if !ok {
		return nil, false
	}
	s.persist(ctx, "delete_confirmed", slot.Key(), func(ctx context.Context) error {
		return s.persister.DeleteConfirmed(ctx, slot)
	})
	return b, true
}

// PutPending сохраняет ожидающую запись по ее идентификатору
func (s *Store) PutPending(ctx context.Context, b *domain.Booking) {
	b = b.Clone()
	b.Status = domain.StatusPending

	s.mu.Lock()
	s.pending[b.ID] = b
	if b.ID > s.lastID {
		s.lastID = b.ID
	}
	s.mu.Unlock()

	s.persist(ctx, "save_pending", fmt.Sprintf("#%d", b.ID), func(ctx context.Context) error {
		return s.persister.SavePending(ctx, b)
	})
}

// DeletePending удаляет ожидающую запись и возвращает ее
func (s *Store) DeletePending(ctx context.Context, id int64) (*domain.Booking, bool) {
	s.mu.Lock()
	b, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if !ok {
		return nil, false
	}
	s.persist(ctx, "delete_pending", fmt.Sprintf("#%d", id), func(ctx context.Context) error {
		return s.persister.DeletePending(ctx, id)
	})
	return b, true
}

// Block добавляет слот в заблокированные; возвращает false, если он уже был заблокирован
func (s *Store) Block(ctx context.Context, slot domain.Slot) bool {
	s.mu.Lock()
	_, exists := s.blocked[slot]
	s.blocked[slot] = struct{}{}
	s.mu.Unlock()

	if exists {
		return false
	}
	s.persist(ctx, "save_blocked", slot.Key(), func(ctx context.Context) error {
		return s.persister.SaveBlocked(ctx, slot)
	})
	return true
}

// Unblock снимает блокировку; возвращает false, если слот не был заблокирован
func (s *Store) Unblock(ctx context.Context, slot domain.Slot) bool {
	s.mu.Lock()
	_, exists := s.blocked[slot]
	delete(s.blocked, slot)
	s.mu.Unlock()

	if !exists {
		return false
	}
	s.persist(ctx, "delete_blocked", slot.Key(), func(ctx context.Context) error {
		return s.persister.DeleteBlocked(ctx, slot)
	})
	return true
}

// PutCustomer сохраняет профиль клиента
func (s *Store) PutCustomer(ctx context.Context, p *domain.CustomerProfile) {
	c := *p

	s.mu.Lock()
	s.customers[c.CustomerID] = &c
	s.mu.Unlock()

	s.persist(ctx, "save_customer", fmt.Sprintf("%d", c.CustomerID), func(ctx context.Context) error {
		return s.persister.SaveCustomer(ctx, &c)
	})
}

func (s *Store) persist(ctx context.Context, operation, key string, write func(ctx context.Context) error) {
	if err := write(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("BookingStore: %s %s failed, in-memory state is ahead of storage: %v", operation, key, err)
		s.metrics.PersistenceError(operation)
	}
}

func (s *Store) sortedPending() []*domain.Booking {
	out := make([]*domain.Booking, 0, len(s.pending))
	for _, b := range s.pending {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortBySlot(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Slot.Before(bookings[j].Slot) })
}
