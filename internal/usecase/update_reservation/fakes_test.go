package update_reservation

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
)

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	updates      int
}

func (f *fakeReservationRepo) GetByIDForUser(_ context.Context, id int64, userID string) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[id]
	if !ok || r.UserID != userID {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) GetByRoom(_ context.Context, roomID int64, activeOnly bool) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.RoomID != roomID || (activeOnly && r.IsCancelled()) {
			continue
		}
		copied := *r
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.reservations[r.ID]
	if !ok || stored.IsCancelled() {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	f.reservations[r.ID] = &copied
	f.updates++
	return r, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
