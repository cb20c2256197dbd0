package get_customer_profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fakeService struct {
	profiles map[int64]*models.CustomerResponse
}

func (f *fakeService) GetCustomer(_ context.Context, customerID int64) (*models.CustomerResponse, error) {
	p, ok := f.profiles[customerID]
	if !ok {
		return nil, bookings.ErrNotFound
	}
	return p, nil
}

func serve(h *Handler, userID string, actor domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/profile", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	req = req.WithContext(handlers.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{profiles: map[int64]*models.CustomerResponse{
		42: {CustomerID: 42, Name: "Ann", Phone: "+998901234567", Lang: "ru"},
	}}
	h := NewHandler(svc, logger.NewNop())

	tests := []struct {
		name       string
		userID     string
		actor      domain.Actor
		wantStatus int
	}{
		{name: "own profile", userID: "42", actor: domain.Actor{UserID: 42}, wantStatus: http.StatusOK},
		{name: "provider reads any", userID: "42", actor: domain.Actor{UserID: 1000, IsProvider: true}, wantStatus: http.StatusOK},
		{name: "someone else", userID: "42", actor: domain.Actor{UserID: 7}, wantStatus: http.StatusForbidden},
		{name: "no profile yet", userID: "7", actor: domain.Actor{UserID: 7}, wantStatus: http.StatusNotFound},
		{name: "bad id", userID: "x", actor: domain.Actor{UserID: 7}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.userID, tt.actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
