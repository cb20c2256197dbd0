package get_customer_profile

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
	msgNoProfile     = "профиль не найден"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}
	if !handlers.CanAccessUser(r.Context(), userID) {
		handlers.RespondForbidden(w, handlers.MsgForbidden)
		return
	}

	result, err := h.service.GetCustomer(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			handlers.RespondNotFound(w, msgNoProfile)
			return
		}
		if handlers.RespondBookingError(w, err) {
			return
		}
		h.logger.Error("GET /users/{userId}/profile - Failed to get profile: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
