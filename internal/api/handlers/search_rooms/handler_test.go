package search_rooms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	searchRooms "github.com/m04kA/SMC-RoomBooking/internal/usecase/search_rooms"
)

type stubUseCase struct {
	got *searchRooms.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *searchRooms.Request) (*searchRooms.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &searchRooms.Response{Rooms: []searchRooms.Room{{ID: 1, Name: "Alpha", Capacity: 10}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_ParsesQuery(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, time.UTC, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/rooms/available?start=2030-03-15T10:00&end=2030-03-15T11:00&capacity=4&equipment=2,3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alpha"`)
	assert.Equal(t, 4, uc.got.RequiredCapacity)
	assert.Equal(t, []int64{2, 3}, uc.got.EquipmentIDs)
	assert.True(t, uc.got.Start.Equal(time.Date(2030, 3, 15, 10, 0, 0, 0, time.UTC)))
}

func TestHandle_BadInput(t *testing.T) {
	for _, query := range []string{
		"?end=2030-03-15T11:00",
		"?start=2030-03-15T10:00&end=2030-03-15T11:00&capacity=many",
		"?start=2030-03-15T10:00&end=2030-03-15T11:00&equipment=a",
	} {
		w := httptest.NewRecorder()
		NewHandler(&stubUseCase{}, time.UTC, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/available"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestHandle_ValidationFields(t *testing.T) {
	uc := &stubUseCase{err: domain.NewValidationError("End date/time must be later than start date/time.", domain.FieldEndTime)}

	w := httptest.NewRecorder()
	NewHandler(uc, time.UTC, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/rooms/available?start=2030-03-15T11:00&end=2030-03-15T10:00", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":["EndTime"]`)
}
