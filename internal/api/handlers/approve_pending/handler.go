package approve_pending

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

const (
	msgInvalidPendingID = "некорректный ID заявки"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/pending/{id}/approve
// Повторное нажатие не ошибка: отвечаем 200 с сообщением "уже обработана"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /pending/{id}/approve - Invalid pending ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPendingID)
		return
	}

	result, err := h.service.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			h.logger.Info("POST /pending/{id}/approve - Already handled: pending_id=%d", id)
			handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: handlers.MsgAlreadyHandled})
			return
		}
		if handlers.RespondBookingError(w, err) {
			return
		}
		h.logger.Error("POST /pending/{id}/approve - Failed to approve: pending_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /pending/{id}/approve - Approved: pending_id=%d, slot=%s", id, result.SlotKey)
	handlers.RespondJSON(w, http.StatusOK, result)
}
