package toggle_work_day

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config"
)

const (
	msgInvalidDay  = "некорректный день недели, ожидается 0-6 (0 - воскресенье)"
	msgLastWorkDay = "нельзя убрать последний рабочий день"
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

// Handle POST /api/v1/config/work-days/{day}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 0 || day > 6 {
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	result, err := h.service.ToggleWorkDay(r.Context(), time.Weekday(day))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigInvalid):
			h.logger.Warn("POST /config/work-days/{day}/toggle - Rejected: day=%d, error=%v", day, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgLastWorkDay)

		case errors.Is(err, config.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("POST /config/work-days/{day}/toggle - Failed to toggle: day=%d, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /config/work-days/{day}/toggle - Toggled %s, work_days=%v", time.Weekday(day), result.WorkDays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
