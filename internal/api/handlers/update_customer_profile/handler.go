package update_customer_profile

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle PUT /api/v1/users/{userId}/profile
// Обновляются только переданные поля (name, phone, lang)
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

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{userId}/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCustomer(r.Context(), userID, req)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("PUT /users/{userId}/profile - Rejected: user_id=%d, error=%v", userID, err)
			return
		}
		h.logger.Error("PUT /users/{userId}/profile - Failed to update profile: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /users/{userId}/profile - Profile updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
