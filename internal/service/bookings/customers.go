package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

// GetCustomer возвращает сохраненный профиль клиента
func (e *Engine) GetCustomer(ctx context.Context, customerID int64) (*models.CustomerResponse, error) {
	return do(e, ctx, "get_customer", func(ctx context.Context, tx *txn) (*models.CustomerResponse, error) {
		p, ok := e.store.Customer(customerID)
		if !ok {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return models.FromDomainCustomer(p), nil
	})
}

// UpdateCustomer частично обновляет профиль клиента, создавая его при необходимости
func (e *Engine) UpdateCustomer(ctx context.Context, customerID int64, req models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if req.Lang != nil && !domain.IsSupportedLang(*req.Lang) {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, *req.Lang)
	}

	resp, err := do(e, ctx, "update_customer", func(ctx context.Context, tx *txn) (*models.CustomerResponse, error) {
		p, ok := e.store.Customer(customerID)
		if !ok {
			p = &domain.CustomerProfile{CustomerID: customerID, Lang: domain.DefaultLang}
		}
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			p.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Lang != nil {
			p.Lang = *req.Lang
		}

		e.store.PutCustomer(ctx, p)
		e.logger.Info("Bookings: profile of customer %d saved", customerID)
		return models.FromDomainCustomer(p), nil
	})
	e.observe("update_customer", err)
	return resp, err
}

// SaveCustomerProfile сохраняет контакты клиента
func (e *Engine) SaveCustomerProfile(ctx context.Context, customerID int64, name, phone string) (*models.CustomerResponse, error) {
	return e.UpdateCustomer(ctx, customerID, models.UpdateCustomerRequest{Name: &name, Phone: &phone})
}

// SetLanguage сохраняет язык уведомлений клиента
func (e *Engine) SetLanguage(ctx context.Context, customerID int64, lang string) (*models.CustomerResponse, error) {
	return e.UpdateCustomer(ctx, customerID, models.UpdateCustomerRequest{Lang: &lang})
}
