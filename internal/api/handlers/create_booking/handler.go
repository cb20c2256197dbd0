package create_booking

import (
	"net/http"

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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := handlers.ActorFromContext(r.Context())

	var req models.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.CustomerID = actor.UserID

	result, err := h.service.Request(r.Context(), req)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("POST /bookings - Rejected: user_id=%d, slot=%s %s, error=%v", actor.UserID, req.Date, req.Time, err)
			return
		}
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings - Booking requested: booking_id=%d, user_id=%d, slot=%s", *result.ID, actor.UserID, result.SlotKey)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
