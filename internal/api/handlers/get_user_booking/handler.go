package get_user_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgNoBooking     = "активной записи нет"
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

// Handle GET /api/v1/users/{userId}/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/booking - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if !handlers.CanAccessUser(r.Context(), userID) {
		handlers.RespondForbidden(w, handlers.MsgForbidden)
		return
	}

	result, err := h.service.CustomerBooking(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			handlers.RespondNotFound(w, msgNoBooking)
			return
		}
		if handlers.RespondBookingError(w, err) {
			return
		}
		h.logger.Error("GET /users/{userId}/booking - Failed to get booking: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
