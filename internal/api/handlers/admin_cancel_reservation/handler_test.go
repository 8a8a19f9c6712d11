package admin_cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

type stubService struct {
	status models.AdminCancelStatus
}

func (s *stubService) AdminCancel(_ context.Context, id int64, reason string) (*models.AdminCancelResult, error) {
	result := &models.AdminCancelResult{Status: s.status}
	if s.status == models.AdminCancelSuccess {
		result.Reservation = &models.ReservationResponse{ID: id, IsCancelled: true, CancelReason: &reason}
	}
	return result, nil
}

type recorder struct {
	outcomes []string
}

func (r *recorder) RecordReservation(_, outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/admin/reservations/{id}/cancel", h.Handle).Methods(http.MethodPatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status models.AdminCancelStatus
		code   int
	}{
		{name: "success", path: "/admin/reservations/5/cancel", body: `{"reason":"maintenance"}`, status: models.AdminCancelSuccess, code: http.StatusOK},
		{name: "not found", path: "/admin/reservations/5/cancel", body: `{"reason":"maintenance"}`, status: models.AdminCancelNotFound, code: http.StatusNotFound},
		{name: "already cancelled", path: "/admin/reservations/5/cancel", body: `{"reason":"maintenance"}`, status: models.AdminCancelAlreadyCancelled, code: http.StatusConflict},
		{name: "missing reason", path: "/admin/reservations/5/cancel", body: `{}`, code: http.StatusBadRequest},
		{name: "bad id", path: "/admin/reservations/abc/cancel", body: `{"reason":"x"}`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			h := NewHandler(&stubService{status: tt.status}, rec, nopLogger{})

			w := serve(h, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.status != "" {
				assert.Equal(t, []string{string(tt.status)}, rec.outcomes)
			}
		})
	}
}
