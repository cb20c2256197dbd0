package cancel_pending

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

const (
	msgInvalidPendingID = "некорректный ID заявки"
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

// Handle PATCH /api/v1/pending/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /pending/{id}/cancel - Invalid pending ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPendingID)
		return
	}
	actor, _ := handlers.ActorFromContext(r.Context())

	result, err := h.service.CancelPending(r.Context(), id, actor)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("PATCH /pending/{id}/cancel - Rejected: pending_id=%d, user_id=%d, error=%v", id, actor.UserID, err)
			return
		}
		h.logger.Error("PATCH /pending/{id}/cancel - Failed to cancel: pending_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /pending/{id}/cancel - Cancelled: pending_id=%d, user_id=%d", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
