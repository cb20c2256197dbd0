package get_day_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
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

// Handle GET /api/v1/schedule
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.DaySchedule(r.Context(), date)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("GET /schedule - Rejected: date=%s, error=%v", date, err)
			return
		}
		h.logger.Error("GET /schedule - Failed to get schedule: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
