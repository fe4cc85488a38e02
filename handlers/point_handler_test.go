package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
)

type stubPointService struct {
	services.PointService
	confirmedBy services.Actor
	requestID   int
	settlement  *models.Settlement
	err         error
}

func (s *stubPointService) ConfirmCharge(_ context.Context, actor services.Actor, requestID int) (*models.Settlement, error) {
	s.confirmedBy, s.requestID = actor, requestID
	return s.settlement, s.err
}

func (s *stubPointService) RequestCharge(_ context.Context, userID int, input services.ChargeRequestInput) (*models.PointChargeRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PointChargeRequest{ID: 1, UserID: userID, Amount: input.Amount, DepositorName: input.DepositorName, Status: models.ChargePending}, nil
}

func pointRouter(h *PointHandler, userID int, role models.UserRole) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID > 0 {
				req = withUser(req, userID, role)
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/points/charges", h.RequestCharge)
	r.Post("/admin/charges/{chargeID}/confirm", h.ConfirmCharge)
	return r
}

func TestConfirmChargeHandler(t *testing.T) {
	stub := &stubPointService{settlement: &models.Settlement{
		Request:               &models.PointChargeRequest{ID: 5, UserID: 1, Amount: 30, Status: models.ChargeConfirmed},
		Balance:               10,
		ConfirmedParticipants: []int{3},
	}}
	router := pointRouter(NewPointHandler(stub), 900, models.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charges/5/confirm", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.requestID)
	assert.Equal(t, services.Actor{ID: 900, Role: models.RoleAdmin}, stub.confirmedBy)

	var body models.Settlement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Balance)
	assert.Equal(t, []int{3}, body.ConfirmedParticipants)
}

func TestConfirmChargeHandler_Errors(t *testing.T) {
	stub := &stubPointService{err: services.ErrChargeAlreadyProcessed}
	router := pointRouter(NewPointHandler(stub), 900, models.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charges/5/confirm", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charges/abc/confirm", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	pointRouter(NewPointHandler(stub), 0, "").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/charges/5/confirm", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestChargeHandler(t *testing.T) {
	router := pointRouter(NewPointHandler(&stubPointService{}), 1, models.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/points/charges", strings.NewReader(`{"amount": 30, "depositor_name": "Kim"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Charge models.PointChargeRequest `json:"charge"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Charge.UserID)
	assert.Equal(t, 30, body.Charge.Amount)
	assert.Equal(t, models.ChargePending, body.Charge.Status)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/points/charges", strings.NewReader(`{"amount": "many"}`))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
