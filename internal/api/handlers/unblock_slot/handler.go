package unblock_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

const (
	msgNotBlocked = "слот не заблокирован"
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

// Handle DELETE /api/v1/blocked/{date}/{time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, start := vars["date"], vars["time"]

	if err := h.service.UnblockSlot(r.Context(), date, start); err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			handlers.RespondNotFound(w, msgNotBlocked)
			return
		}
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("DELETE /blocked/{date}/{time} - Rejected: slot=%s %s, error=%v", date, start, err)
			return
		}
		h.logger.Error("DELETE /blocked/{date}/{time} - Failed to unblock slot: slot=%s %s, error=%v", date, start, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /blocked/{date}/{time} - Slot unblocked: %s %s", date, start)
	w.WriteHeader(http.StatusNoContent)
}
