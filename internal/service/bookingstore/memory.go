package bookingstore

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// MemoryPersister Persister без долговременного хранения.
// Используется при database.driver = "memory" и в тестах; Fail позволяет имитировать сбой записи.
type MemoryPersister struct {
	mu   sync.Mutex
	data Data
	Fail error
}

// NewMemoryPersister создает хранилище с начальными данными
func NewMemoryPersister(initial *Data) *MemoryPersister {
	p := &MemoryPersister{}
	if initial != nil {
		p.data = *initial
	}
	return p
}

func (p *MemoryPersister) LoadAll(_ context.Context) (*Data, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := &Data{
		Blocked: append([]domain.Slot(nil), p.data.Blocked...),
	}
	for _, b := range p.data.Confirmed {
		out.Confirmed = append(out.Confirmed, b.Clone())
	}
	for _, b := range p.data.Pending {
		out.Pending = append(out.Pending, b.Clone())
	}
	for _, c := range p.data.Customers {
		cp := *c
		out.Customers = append(out.Customers, &cp)
	}
	return out, nil
}

func (p *MemoryPersister) SaveConfirmed(_ context.Context, b *domain.Booking) error {
	return p.apply(func() {
		p.data.Confirmed = removeBooking(p.data.Confirmed, func(x *domain.Booking) bool { return x.Slot == b.Slot })
		p.data.Confirmed = append(p.data.Confirmed, b.Clone())
	})
}

func (p *MemoryPersister) DeleteConfirmed(_ context.Context, slot domain.Slot) error {
	return p.apply(func() {
		p.data.Confirmed = removeBooking(p.data.Confirmed, func(x *domain.Booking) bool { return x.Slot == slot })
	})
}

func (p *MemoryPersister) SavePending(_ context.Context, b *domain.Booking) error {
	return p.apply(func() {
		p.data.Pending = removeBooking(p.data.Pending, func(x *domain.Booking) bool { return x.ID == b.ID })
		p.data.Pending = append(p.data.Pending, b.Clone())
	})
}

func (p *MemoryPersister) DeletePending(_ context.Context, id int64) error {
	return p.apply(func() {
		p.data.Pending = removeBooking(p.data.Pending, func(x *domain.Booking) bool { return x.ID == id })
	})
}

func (p *MemoryPersister) SaveBlocked(_ context.Context, slot domain.Slot) error {
	return p.apply(func() {
		for _, s := range p.data.Blocked {
			if s == slot {
				return
			}
		}
		p.data.Blocked = append(p.data.Blocked, slot)
	})
}

func (p *MemoryPersister) DeleteBlocked(_ context.Context, slot domain.Slot) error {
	return p.apply(func() {
		out := p.data.Blocked[:0]
		for _, s := range p.data.Blocked {
			if s != slot {
				out = append(out, s)
			}
		}
		p.data.Blocked = out
	})
}

func (p *MemoryPersister) SaveCustomer(_ context.Context, profile *domain.CustomerProfile) error {
	return p.apply(func() {
		for i, c := range p.data.Customers {
			if c.CustomerID == profile.CustomerID {
				cp := *profile
				p.data.Customers[i] = &cp
				return
			}
		}
		cp := *profile
		p.data.Customers = append(p.data.Customers, &cp)
	})
}

func (p *MemoryPersister) apply(mutate func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil {
		return p.Fail
	}
	mutate()
	return nil
}

func removeBooking(bookings []*domain.Booking, match func(*domain.Booking) bool) []*domain.Booking {
	out := bookings[:0]
	for _, b := range bookings {
		if !match(b) {
			out = append(out, b)
		}
	}
	return out
}
