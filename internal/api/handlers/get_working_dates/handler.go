package get_working_dates

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
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

// Handle GET /api/v1/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.WorkingDates(r.Context())
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			return
		}
		h.logger.Error("GET /dates - Failed to get working dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
