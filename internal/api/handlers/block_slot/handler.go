package block_slot

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

const (
	msgBlocked = "слот заблокирован"
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

// Handle PUT /api/v1/blocked/{date}/{time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, start := vars["date"], vars["time"]

	if err := h.service.BlockSlot(r.Context(), date, start); err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("PUT /blocked/{date}/{time} - Rejected: slot=%s %s, error=%v", date, start, err)
			return
		}
		h.logger.Error("PUT /blocked/{date}/{time} - Failed to block slot: slot=%s %s, error=%v", date, start, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /blocked/{date}/{time} - Slot blocked: %s %s", date, start)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgBlocked})
}
