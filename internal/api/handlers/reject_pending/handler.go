package reject_pending

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

const (
	msgInvalidPendingID = "некорректный ID заявки"
	msgRejected         = "заявка отклонена"
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

// Handle POST /api/v1/pending/{id}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /pending/{id}/reject - Invalid pending ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPendingID)
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			h.logger.Info("POST /pending/{id}/reject - Already handled: pending_id=%d", id)
			handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: handlers.MsgAlreadyHandled})
			return
		}
		if handlers.RespondBookingError(w, err) {
			return
		}
		h.logger.Error("POST /pending/{id}/reject - Failed to reject: pending_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /pending/{id}/reject - Rejected: pending_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgRejected})
}
