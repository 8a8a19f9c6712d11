package create_reservation

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
)

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
	err   error
}

func (f *fakeRoomRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

// fakeReservationRepo хранит бронирования в памяти
// strict эмулирует exclusion constraint базы
type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
	strict       bool
	hideExisting bool
}

func (f *fakeReservationRepo) GetByRoom(_ context.Context, roomID int64, activeOnly bool) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hideExisting {
		return nil, nil
	}

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

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.strict {
		for _, existing := range f.reservations {
			if existing.RoomID == r.RoomID && existing.IsActive() && existing.OverlapsWith(r.Start, r.End) {
				return nil, reservationRepo.ErrOverlap
			}
		}
	}

	f.nextID++
	r.ID = f.nextID
	stored := *r
	f.reservations = append(f.reservations, &stored)
	return r, nil
}

func (f *fakeReservationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
