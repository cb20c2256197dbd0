package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/ptr"
)

// Request модели

// CreateBookingRequest запрос клиента на запись
// Имя и телефон можно не передавать, если они уже есть в профиле
type CreateBookingRequest struct {
	CustomerID int64    `json:"-"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Time       string   `json:"time"` // HH:MM
	ServiceIDs []string `json:"serviceIds"`
	Name       string   `json:"name,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

// RescheduleRequest запрос на перенос подтвержденной записи
// NSlots = 0 сохраняет длительность исходной записи
type RescheduleRequest struct {
	NewDate string `json:"newDate"`
	NewTime string `json:"newTime"`
	NSlots  int    `json:"nSlots,omitempty"`
}

// UpdateCustomerRequest частичное обновление профиля клиента
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Lang  *string `json:"lang,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              *int64    `json:"id,omitempty"`
	Status          string    `json:"status"`
	SlotKey         string    `json:"slotKey"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	TimeRange       string    `json:"timeRange"`
	DurationSlots   int       `json:"durationSlots"`
	DurationMinutes int       `json:"durationMinutes"`
	CustomerID      int64     `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerLang    string    `json:"customerLang"`
	ServiceIDs      []string  `json:"serviceIds"`
	CreatedAt       time.Time `json:"createdAt"`
	RescheduledFrom *string   `json:"rescheduledFrom,omitempty"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SlotsResponse свободные времена начала на дату
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// WorkingDate рабочая дата
type WorkingDate struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// DatesResponse ближайшие рабочие даты
type DatesResponse struct {
	Dates []WorkingDate `json:"dates"`
}

// Виды строк расписания дня
const (
	EntryConfirmed = "confirmed"
	EntryPending   = "pending"
	EntryBlocked   = "blocked"
)

// DayEntry строка расписания дня
type DayEntry struct {
	Time      string           `json:"time"`
	TimeRange string           `json:"timeRange"`
	Kind      string           `json:"kind"`
	Booking   *BookingResponse `json:"booking,omitempty"`
}

// DayScheduleResponse расписание провайдера на дату
type DayScheduleResponse struct {
	Date    string     `json:"date"`
	Entries []DayEntry `json:"entries"`
}

// CustomerResponse профиль клиента
type CustomerResponse struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Lang       string `json:"lang"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		Status:          string(b.Status),
		SlotKey:         b.Slot.Key(),
		Date:            b.Slot.Date.String(),
		Time:            b.Slot.Start.String(),
		TimeRange:       b.TimeRange(),
		DurationSlots:   b.DurationSlots,
		DurationMinutes: b.DurationMinutes,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerLang:    b.CustomerLang,
		ServiceIDs:      append([]string{}, b.ServiceIDs...),
		CreatedAt:       b.CreatedAt,
	}
	if b.IsPending() {
		resp.ID = ptr.Ptr(b.ID)
	}
	if b.RescheduledFrom != nil {
		resp.RescheduledFrom = ptr.Ptr(b.RescheduledFrom.Key())
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// FromDomainCustomer конвертирует профиль клиента в DTO
func FromDomainCustomer(p *domain.CustomerProfile) *CustomerResponse {
	return &CustomerResponse{
		CustomerID: p.CustomerID,
		Name:       p.Name,
		Phone:      p.Phone,
		Lang:       p.Language(),
	}
}
