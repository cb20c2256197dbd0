package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

// Общие сообщения об ошибках
const (
	MsgInvalidRequestBody = "некорректное тело запроса"
	MsgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	MsgInvalidInput       = "некорректные данные запроса"
	MsgSlotConflict       = "выбранное время уже занято"
	MsgDuplicateBooking   = "у вас уже есть активная запись"
	MsgNotFound           = "запись не найдена"
	MsgForbidden          = "доступ запрещен"
	MsgUnavailable        = "сервис временно недоступен"
	MsgAlreadyHandled     = "заявка уже обработана"
)

// RespondBookingError отвечает на ошибку движка бронирования
// Возвращает false, если ошибка не распознана и вызывающий должен ответить сам.
func RespondBookingError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, bookings.ErrSlotConflict):
		RespondConflict(w, MsgSlotConflict)
	case errors.Is(err, bookings.ErrDuplicateActiveBooking):
		RespondConflict(w, MsgDuplicateBooking)
	case errors.Is(err, bookings.ErrNotFound):
		RespondNotFound(w, MsgNotFound)
	case errors.Is(err, bookings.ErrForbidden):
		RespondForbidden(w, MsgForbidden)
	case errors.Is(err, bookings.ErrInvalidInput):
		RespondBadRequest(w, MsgInvalidInput)
	case errors.Is(err, bookings.ErrStopped):
		RespondServiceUnavailable(w, MsgUnavailable)
	default:
		return false
	}
	return true
}
