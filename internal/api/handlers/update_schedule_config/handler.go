package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
)

const (
	msgInvalidData = "некорректные данные расписания"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigInvalid), errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid data: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidData)

		default:
			h.logger.Error("PUT /config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config updated: hours=%d-%d, work_days=%v", result.StartHour, result.EndHour, result.WorkDays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
