package approve_pending

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeService struct {
	err    error
	called int64
}

func (f *fakeService) Approve(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.called = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{Status: "confirmed", SlotKey: "2026-02-21 10:00"}, nil
}

func serve(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pending/"+id+"/approve", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Approved(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), "5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.called)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_AlreadyHandled(t *testing.T) {
	rec := serve(NewHandler(&fakeService{err: bookings.ErrNotFound}, logger.NewNop()), "5")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.MsgAlreadyHandled, resp.Message)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "slot taken meanwhile", id: "5", err: bookings.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "internal", id: "5", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), tt.id)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
