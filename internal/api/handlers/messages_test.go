package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
)

func TestRespondBookingError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "slot conflict", err: bookings.ErrSlotConflict, wantStatus: http.StatusConflict, wantMsg: MsgSlotConflict},
		{name: "duplicate", err: bookings.ErrDuplicateActiveBooking, wantStatus: http.StatusConflict, wantMsg: MsgDuplicateBooking},
		{name: "not found wrapped", err: fmt.Errorf("%w: booking 7", bookings.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: MsgNotFound},
		{name: "forbidden", err: bookings.ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: MsgForbidden},
		{name: "invalid input", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: MsgInvalidInput},
		{name: "stopped", err: bookings.ErrStopped, wantStatus: http.StatusServiceUnavailable, wantMsg: MsgUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondBookingError(rec, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}

	t.Run("unknown error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		assert.False(t, RespondBookingError(rec, errors.New("boom")))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}
