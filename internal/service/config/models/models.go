package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	StartHour *int   `json:"startHour,omitempty"`
	EndHour   *int   `json:"endHour,omitempty"`
	WorkDays  *[]int `json:"workDays,omitempty"` // 0 = воскресенье ... 6 = суббота
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpdateConfigRequest) ApplyToConfig(c *domain.ScheduleConfig) {
	if r.StartHour != nil {
		c.StartHour = *r.StartHour
	}
	if r.EndHour != nil {
		c.EndHour = *r.EndHour
	}
	if r.WorkDays != nil {
		days := make([]time.Weekday, len(*r.WorkDays))
		for i, d := range *r.WorkDays {
			days[i] = time.Weekday(d)
		}
		c.WorkDays = days
	}
}

// Response модели

// ConfigResponse ответ с текущим расписанием
type ConfigResponse struct {
	StartHour    int      `json:"startHour"`
	EndHour      int      `json:"endHour"`
	WorkDays     []int    `json:"workDays"`
	WorkDayNames []string `json:"workDayNames"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c domain.ScheduleConfig) *ConfigResponse {
	resp := &ConfigResponse{
		StartHour:    c.StartHour,
		EndHour:      c.EndHour,
		WorkDays:     make([]int, len(c.WorkDays)),
		WorkDayNames: make([]string, len(c.WorkDays)),
	}
	for i, d := range c.WorkDays {
		resp.WorkDays[i] = int(d)
		resp.WorkDayNames[i] = d.String()
	}
	return resp
}
