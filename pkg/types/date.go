package types

import (
	"fmt"
	"time"
)

// DateFormat формат даты "YYYY-MM-DD"
const DateFormat = "2006-01-02"

// Date календарная дата без времени и часового пояса
// Сравнима через ==, поэтому может использоваться как ключ map
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate нормализует компоненты даты (например, 32 января -> 1 февраля)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарную дату момента t в его локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит строку формата "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

// In возвращает момент начала дня в указанной локации
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At возвращает момент времени tod в этот день в указанной локации
func (d Date) At(tod TimeString, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// AddDays возвращает дату, сдвинутую на n дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// String форматирует дату как "YYYY-MM-DD"
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
