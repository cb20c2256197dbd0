package bookings

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/types"
)

// parseSlot разбирает дату и время начала и проверяет шаг сетки
func parseSlot(date, start string) (domain.Slot, error) {
	slot, err := domain.ParseSlot(date, start)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !slot.IsAligned() {
		return domain.Slot{}, fmt.Errorf("%w: time %s is not aligned to %d minutes", ErrInvalidInput, slot.Start, domain.SlotMinutes)
	}
	return slot, nil
}

func parseDate(date string) (types.Date, error) {
	d, err := types.ParseDate(date)
	if err != nil {
		return types.Date{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return d, nil
}

// checkBookable проверяет, что слот в будущем и приходится на рабочий день
func (e *Engine) checkBookable(cfg domain.ScheduleConfig, slot domain.Slot) error {
	if !cfg.IsWorkDay(slot.Date.Weekday()) {
		return fmt.Errorf("%w: %s is not a working day", ErrInvalidInput, slot.Date)
	}
	if !slot.StartsAt(e.opts.Location).After(e.now()) {
		return fmt.Errorf("%w: slot %s is in the past", ErrInvalidInput, slot)
	}
	return nil
}

// resolveContact заполняет имя и телефон из профиля клиента, если они не переданы
func (e *Engine) resolveContact(customerID int64, name, phone string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	lang := domain.DefaultLang

	if profile, ok := e.store.Customer(customerID); ok {
		if name == "" {
			name = profile.Name
		}
		if phone == "" {
			phone = profile.Phone
		}
		lang = profile.Language()
	}

	if name == "" || phone == "" {
		return "", "", "", fmt.Errorf("%w: customer name and phone are required", ErrInvalidInput)
	}
	return name, phone, lang, nil
}

func canActOn(actor domain.Actor, b *domain.Booking) bool {
	return actor.IsProvider || actor.UserID == b.CustomerID
}
