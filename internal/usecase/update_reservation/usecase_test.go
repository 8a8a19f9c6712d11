package update_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
	"github.com/m04kA/SMC-RoomBooking/pkg/keymutex"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
)

var now = time.Date(2030, time.March, 14, 9, 0, 0, 0, time.UTC)

func tomorrow(hour, minute int) time.Time {
	return time.Date(2030, time.March, 15, hour, minute, 0, 0, time.UTC)
}

func newUseCase(clk *clock.Fake) (*UseCase, *fakeReservationRepo) {
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{1: {ID: 1, Name: "Alpha", Capacity: 6}}}
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, RoomID: 1, UserID: "owner", Title: "Sync", AttendeesCount: 2, Start: tomorrow(10, 0), End: tomorrow(11, 0)},
		2: {ID: 2, RoomID: 1, UserID: "other", Title: "Review", AttendeesCount: 2, Start: tomorrow(12, 0), End: tomorrow(13, 0)},
	}}
	return NewUseCase(rooms, reservations, keymutex.New[int64](), fakeTxManager{}, clk, nopLogger{}), reservations
}

func updateRequest(start, end time.Time) *Request {
	return &Request{
		ID:             1,
		UserID:         "owner",
		Title:          "Sync (moved)",
		Notes:          ptr.Ptr("bring laptops"),
		AttendeesCount: 5,
		Start:          start,
		End:            end,
	}
}

func TestExecute_UpdatesAllFields(t *testing.T) {
	uc, repo := newUseCase(clock.NewFake(now))

	resp, err := uc.Execute(context.Background(), updateRequest(tomorrow(10, 30), tomorrow(11, 30)))
	require.NoError(t, err)

	assert.Equal(t, "Sync (moved)", resp.Title)
	assert.Equal(t, 5, resp.AttendeesCount)
	assert.Equal(t, "bring laptops", *resp.Notes)
	assert.Equal(t, tomorrow(10, 30), repo.reservations[1].Start)
}

func TestExecute_OwnIntervalDoesNotConflict(t *testing.T) {
	uc, _ := newUseCase(clock.NewFake(now))

	_, err := uc.Execute(context.Background(), updateRequest(tomorrow(10, 0), tomorrow(11, 0)))
	assert.NoError(t, err)
}

func TestExecute_ConflictWithOtherReservation(t *testing.T) {
	uc, repo := newUseCase(clock.NewFake(now))

	_, err := uc.Execute(context.Background(), updateRequest(tomorrow(11, 30), tomorrow(12, 30)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, repo.updates)

	_, err = uc.Execute(context.Background(), updateRequest(tomorrow(11, 0), tomorrow(12, 0)))
	assert.NoError(t, err, "adjacent to the other reservation")
}

func TestExecute_NotOwner(t *testing.T) {
	uc, _ := newUseCase(clock.NewFake(now))
	req := updateRequest(tomorrow(10, 0), tomorrow(11, 0))
	req.UserID = "intruder"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_AlreadyStarted(t *testing.T) {
	clk := clock.NewFake(tomorrow(10, 0))
	uc, _ := newUseCase(clk)

	_, err := uc.Execute(context.Background(), updateRequest(tomorrow(14, 0), tomorrow(15, 0)))
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestExecute_Cancelled(t *testing.T) {
	uc, repo := newUseCase(clock.NewFake(now))
	repo.reservations[1].Cancellation = &domain.Cancellation{At: now, Reason: "x"}

	_, err := uc.Execute(context.Background(), updateRequest(tomorrow(14, 0), tomorrow(15, 0)))
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_RulesAndCapacity(t *testing.T) {
	uc, _ := newUseCase(clock.NewFake(now))

	_, err := uc.Execute(context.Background(), updateRequest(tomorrow(19, 30), tomorrow(20, 30)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	req := updateRequest(tomorrow(14, 0), tomorrow(15, 0))
	req.AttendeesCount = 7
	_, err = uc.Execute(context.Background(), req)

	var capErr *domain.CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 6, capErr.Capacity)
}
