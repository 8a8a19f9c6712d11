package search_rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
)

type fakeRoomRepo struct {
	rooms []*domain.Room
	err   error
}

func (f *fakeRoomRepo) List(context.Context) ([]*domain.Room, error) {
	return f.rooms, f.err
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	from, to     time.Time
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	f.from, f.to = from, to
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.IsActive() && r.OverlapsWith(from, to) {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2030, time.March, 14, 9, 0, 0, 0, time.UTC)

func TestExecute(t *testing.T) {
	rooms := &fakeRoomRepo{rooms: []*domain.Room{
		{ID: 1, Name: "Zebra", Capacity: 10, Equipment: []domain.Equipment{{ID: 1, Name: "Projector"}}},
		{ID: 2, Name: "Alpha", Capacity: 10, Equipment: []domain.Equipment{{ID: 1, Name: "Projector"}}},
		{ID: 3, Name: "Beta", Capacity: 10, Equipment: []domain.Equipment{{ID: 1, Name: "Projector"}}},
		{ID: 4, Name: "Busy", Capacity: 10, Equipment: []domain.Equipment{{ID: 1, Name: "Projector"}}},
	}}
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{ID: 1, RoomID: 4, Start: at(10, 0), End: at(11, 0)},
	}}
	tx := &fakeTxManager{}
	uc := NewUseCase(rooms, reservations, tx, clock.NewFake(now), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Start:            at(10, 30),
		End:              at(11, 30),
		RequiredCapacity: 10,
		EquipmentIDs:     []int64{1, 1},
	})
	require.NoError(t, err)

	got := make([]string, 0, len(resp.Rooms))
	for _, r := range resp.Rooms {
		got = append(got, r.Name)
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Zebra"}, got)
	assert.Equal(t, "Projector", resp.Rooms[0].Equipment[0].Name)
	assert.Equal(t, at(10, 30), reservations.from)
	assert.Equal(t, at(11, 30), reservations.to)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_DefaultCapacity(t *testing.T) {
	rooms := &fakeRoomRepo{rooms: []*domain.Room{{ID: 1, Name: "Solo", Capacity: 1}}}
	uc := NewUseCase(rooms, &fakeReservationRepo{}, &fakeTxManager{}, clock.NewFake(now), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Start: at(10, 0), End: at(11, 0)})
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 1)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{}, &fakeReservationRepo{}, &fakeTxManager{}, clock.NewFake(now), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Start: at(21, 0), End: at(20, 0)})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, domain.FieldStartTime)
	assert.Contains(t, vErr.Fields, domain.FieldEndTime)

	_, err = uc.Execute(context.Background(), &Request{Start: at(10, 0), End: at(11, 0), RequiredCapacity: 501})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeRoomRepo{err: errors.New("db down")}, &fakeReservationRepo{}, &fakeTxManager{}, clock.NewFake(now), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Start: at(10, 0), End: at(11, 0)})
	assert.ErrorIs(t, err, ErrInternal)
}
