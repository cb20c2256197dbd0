package toggle_work_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/service/config"
	"github.com/m04kA/SMC-SlotBooking/internal/service/config/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeService struct {
	got    time.Weekday
	called bool
	err    error
}

func (f *fakeService) ToggleWorkDay(_ context.Context, day time.Weekday) (*models.ConfigResponse, error) {
	f.got, f.called = day, true
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfigResponse{StartHour: 10, EndHour: 20, WorkDays: []int{int(day)}}, nil
}

func serve(h *Handler, day string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/config/work-days/"+day+"/toggle", nil)
	req = mux.SetURLVars(req, map[string]string{"day": day})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Toggles(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "6")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Saturday, svc.got)
}

func TestHandle_BadDay(t *testing.T) {
	for _, day := range []string{"7", "-1", "monday"} {
		t.Run(day, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(NewHandler(svc, logger.NewNop()), day)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, svc.called)
		})
	}
}

func TestHandle_LastWorkDay(t *testing.T) {
	rec := serve(NewHandler(&fakeService{err: config.ErrConfigInvalid}, logger.NewNop()), "1")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLastWorkDay)
}
