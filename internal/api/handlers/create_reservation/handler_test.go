package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_reservation"
)

type stubUseCase struct {
	got *createReservation.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createReservation.Response{
		ID:             7,
		RoomID:         req.RoomID,
		UserID:         req.UserID,
		Title:          req.Title,
		AttendeesCount: req.AttendeesCount,
		Start:          req.Start,
		End:            req.End,
	}, nil
}

type recorder struct {
	outcomes []string
}

func (r *recorder) RecordReservation(operation, outcome string) {
	r.outcomes = append(r.outcomes, operation+":"+outcome)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"roomId":1,"title":"Planning","attendeesCount":3,"start":"2030-03-15T10:00","end":"2030-03-15T11:00"}`

func serve(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID != "" {
		r = r.WithContext(middleware.WithUser(r.Context(), userID, ""))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	uc := &stubUseCase{}
	rec := &recorder{}
	h := NewHandler(uc, rec, loc, nopLogger{})

	w := serve(h, validBody, "alice")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"start":"2030-03-15T10:00:00+03:00"`)
	assert.Equal(t, "alice", uc.got.UserID)
	assert.True(t, uc.got.Start.Equal(time.Date(2030, 3, 15, 7, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"create:success"}, rec.outcomes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID string
		err    error
		status int
	}{
		{name: "no user", body: validBody, status: http.StatusUnauthorized},
		{name: "broken json", body: `{`, userID: "alice", status: http.StatusBadRequest},
		{name: "blank title", body: `{"roomId":1,"title":" ","attendeesCount":3,"start":"2030-03-15T10:00","end":"2030-03-15T11:00"}`, userID: "alice", status: http.StatusBadRequest},
		{name: "bad time", body: `{"roomId":1,"title":"x","attendeesCount":3,"start":"soon","end":"later"}`, userID: "alice", status: http.StatusBadRequest},
		{name: "conflict", body: validBody, userID: "alice", err: createReservation.ErrConflict, status: http.StatusConflict},
		{name: "room not found", body: validBody, userID: "alice", err: createReservation.ErrRoomNotFound, status: http.StatusNotFound},
		{name: "capacity", body: validBody, userID: "alice", err: &domain.CapacityExceededError{Capacity: 2}, status: http.StatusUnprocessableEntity},
		{name: "rule violation", body: validBody, userID: "alice", err: domain.NewValidationError("Cannot create a reservation in the past.", domain.FieldStartDate), status: http.StatusBadRequest},
		{name: "internal", body: validBody, userID: "alice", err: createReservation.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, &recorder{}, time.UTC, nopLogger{})
			w := serve(h, tt.body, tt.userID)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_ConflictMessage(t *testing.T) {
	rec := &recorder{}
	h := NewHandler(&stubUseCase{err: createReservation.ErrConflict}, rec, time.UTC, nopLogger{})

	w := serve(h, validBody, "alice")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "комната уже забронирована на выбранное время")
	assert.Equal(t, []string{"create:conflict"}, rec.outcomes)
}
