package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidScheduleConfig is returned by ScheduleConfig.Validate.
var ErrInvalidScheduleConfig = errors.New("invalid schedule config")

// ScheduleConfig holds the provider's working days and daily operating hours.
type ScheduleConfig struct {
	StartHour int
	EndHour   int
	WorkDays  []time.Weekday // sorted, unique
}

// DefaultScheduleConfig is used when nothing has been persisted yet.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		StartHour: DefaultStartHour,
		EndHour:   DefaultEndHour,
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

// Validate checks hour bounds and that at least one work day is selected.
func (c ScheduleConfig) Validate() error {
	if c.StartHour < MinStartHour || c.StartHour > 23 {
		return fmt.Errorf("%w: start_hour must be within [%d, 23], got %d", ErrInvalidScheduleConfig, MinStartHour, c.StartHour)
	}
	if c.EndHour > MaxEndHour || c.EndHour < 1 {
		return fmt.Errorf("%w: end_hour must be within [1, %d], got %d", ErrInvalidScheduleConfig, MaxEndHour, c.EndHour)
	}
	if c.StartHour >= c.EndHour {
		return fmt.Errorf("%w: start_hour %d must be before end_hour %d", ErrInvalidScheduleConfig, c.StartHour, c.EndHour)
	}
	if len(c.WorkDays) == 0 {
		return fmt.Errorf("%w: at least one work day is required", ErrInvalidScheduleConfig)
	}
	seen := make(map[time.Weekday]bool, len(c.WorkDays))
	for _, d := range c.WorkDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidScheduleConfig, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate weekday %s", ErrInvalidScheduleConfig, d)
		}
		seen[d] = true
	}
	return nil
}

// IsWorkDay reports whether d is a working weekday.
func (c ScheduleConfig) IsWorkDay(d time.Weekday) bool {
	for _, w := range c.WorkDays {
		if w == d {
			return true
		}
	}
	return false
}

// OpenMinutes returns the operating window as minutes from midnight.
func (c ScheduleConfig) OpenMinutes() (start, end int) {
	return c.StartHour * 60, c.EndHour * 60
}

// Clone returns a copy with its own WorkDays slice.
func (c ScheduleConfig) Clone() ScheduleConfig {
	c.WorkDays = append([]time.Weekday(nil), c.WorkDays...)
	return c
}

// NormalizeWorkDays sorts and de-duplicates days.
func NormalizeWorkDays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
