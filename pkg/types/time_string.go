package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const minutesPerDay = 24 * 60

// TimeString время суток с точностью до минуты ("HH:MM")
// Хранится как количество минут от полуночи, что даёт полный порядок и сравнение через ==
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeString, minutes)
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// MustTimeString создает TimeString из строки "HH:MM" и паникует при ошибке
// Используется для констант и в тестах
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTimeStringFromString парсит строку формата "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{minutes: parsed.Hour()*60 + parsed.Minute(), valid: true}, nil
}

// NewTimeString извлекает время суток из time.Time (в его локации)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// Hour возвращает час
func (t TimeString) Hour() int {
	return t.minutes / 60
}

// Minute возвращает минуты внутри часа
func (t TimeString) Minute() int {
	return t.minutes % 60
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и находится в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return fmt.Errorf("%w: empty", ErrInvalidTimeString)
	}
	if t.minutes < 0 || t.minutes >= minutesPerDay {
		return fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeString, t.minutes)
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на n минут
// Результат может быть ровно 24:00 (конец рабочего дня), но не больше
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m := t.minutes + n
	if m < 0 || m > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %s%+d minutes leaves the day", ErrInvalidTimeString, t, n)
	}
	return TimeString{minutes: m, valid: true}, nil
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}
