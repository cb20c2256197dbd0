package cancel_booking

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle PATCH /api/v1/bookings/{date}/{time}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, start := vars["date"], vars["time"]
	actor, _ := handlers.ActorFromContext(r.Context())

	result, err := h.service.CancelBySlot(r.Context(), date, start, actor)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("PATCH /bookings/{date}/{time}/cancel - Rejected: slot=%s %s, user_id=%d, error=%v", date, start, actor.UserID, err)
			return
		}
		h.logger.Error("PATCH /bookings/{date}/{time}/cancel - Failed to cancel booking: slot=%s %s, error=%v", date, start, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /bookings/{date}/{time}/cancel - Booking cancelled: slot=%s, user_id=%d", result.SlotKey, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
