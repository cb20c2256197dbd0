package reschedule_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
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

// Handle POST /api/v1/bookings/{date}/{time}/reschedule
// Перенос создает новую заявку, которую мастер должен подтвердить
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, start := vars["date"], vars["time"]
	actor, _ := handlers.ActorFromContext(r.Context())

	var req models.RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{date}/{time}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Reschedule(r.Context(), date, start, req, actor)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("POST /bookings/{date}/{time}/reschedule - Rejected: slot=%s %s -> %s %s, error=%v",
				date, start, req.NewDate, req.NewTime, err)
			return
		}
		h.logger.Error("POST /bookings/{date}/{time}/reschedule - Failed to reschedule: slot=%s %s, error=%v", date, start, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/{date}/{time}/reschedule - Reschedule requested: %s %s -> pending #%d", date, start, *result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
