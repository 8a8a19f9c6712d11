package reservations

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
)

var now = time.Date(2030, time.March, 14, 9, 0, 0, 0, time.UTC)

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	err          error
	cancelCalls  int
}

func (f *fakeReservationRepo) get(id int64) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *fakeReservationRepo) GetByIDForUser(_ context.Context, id int64, userID string) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, err := f.get(id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByUser(_ context.Context, userID string, includeCancelled bool) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID && (includeCancelled || r.IsActive()) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) GetCancelledByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID && r.IsCancelled() {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) ListAll(_ context.Context, activeOnly bool) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Reservation
	for id := int64(1); id <= int64(len(f.reservations)); id++ {
		r, ok := f.reservations[id]
		if ok && (!activeOnly || r.IsActive()) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Cancel повторяет условный UPDATE репозитория
func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, c domain.Cancellation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	if r.IsCancelled() {
		return nil, reservationRepo.ErrAlreadyCancelled
	}
	r.Cancellation = &c
	copied := *r
	return &copied, nil
}

type fakeRoomRepo struct{}

func (fakeRoomRepo) List(context.Context) ([]*domain.Room, error) {
	return []*domain.Room{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}, nil
}

type fakeUsers struct {
	calls  map[string]int
	emails map[string]string
}

func (f *fakeUsers) GetEmailWithGracefulDegradation(_ context.Context, userID string) string {
	f.calls[userID]++
	if email, ok := f.emails[userID]; ok {
		return email
	}
	return "(no email)"
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc   *Service
	repo  *fakeReservationRepo
	users *fakeUsers
	clock *clock.Fake
}

func newFixture() *fixture {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, RoomID: 1, UserID: "alice", Title: "Future", AttendeesCount: 2,
			Start: now.Add(24 * time.Hour), End: now.Add(25 * time.Hour)},
		2: {ID: 2, RoomID: 2, UserID: "alice", Title: "Running", AttendeesCount: 2,
			Start: now.Add(-30 * time.Minute), End: now.Add(30 * time.Minute)},
		3: {ID: 3, RoomID: 1, UserID: "bob", Title: "Old", AttendeesCount: 1,
			Start: now.Add(48 * time.Hour), End: now.Add(49 * time.Hour),
			Cancellation: &domain.Cancellation{At: now.Add(-time.Hour), Reason: "moved"}},
	}}
	users := &fakeUsers{calls: map[string]int{}, emails: map[string]string{"alice": "alice@example.com"}}
	c := clock.NewFake(now)

	return &fixture{
		svc:   NewService(repo, fakeRoomRepo{}, users, c, nopLogger{}),
		repo:  repo,
		users: users,
		clock: c,
	}
}

func TestGetByID(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", resp.RoomName)
	assert.False(t, resp.IsCancelled)

	_, err = f.svc.GetByID(context.Background(), 1, "bob")
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserReservations(t *testing.T) {
	f := newFixture()

	active, err := f.svc.GetUserReservations(context.Background(), "bob", false)
	require.NoError(t, err)
	assert.Equal(t, 0, active.Total)

	all, err := f.svc.GetUserReservations(context.Background(), "bob", true)
	require.NoError(t, err)
	require.Equal(t, 1, all.Total)
	assert.True(t, all.Reservations[0].IsCancelled)
	assert.Equal(t, "moved", *all.Reservations[0].CancelReason)
}

func TestGetUserReservations_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("db down")

	_, err := f.svc.GetUserReservations(context.Background(), "alice", true)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCanModify(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ok, err := f.svc.CanModify(ctx, 1, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CanModify(ctx, 2, "alice")
	require.NoError(t, err)
	assert.False(t, ok, "started reservation")

	ok, err = f.svc.CanModify(ctx, 1, "bob")
	require.NoError(t, err)
	assert.False(t, ok, "foreign reservation")

	f.clock.Set(now.Add(24 * time.Hour))
	ok, err = f.svc.CanModify(ctx, 1, "alice")
	require.NoError(t, err)
	assert.False(t, ok, "start equal to now counts as started")
}

func TestCancel_DefaultReason(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), 1, "alice", nil)
	require.NoError(t, err)
	assert.True(t, resp.IsCancelled)
	require.NotNil(t, resp.CancelReason)
	assert.Equal(t, domain.DefaultCancelReason, *resp.CancelReason)
	assert.Equal(t, now, *resp.CancelledAt)
}

func TestCancel_CustomReason(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), 1, "alice", ptr.Ptr("  plans changed "))
	require.NoError(t, err)
	assert.Equal(t, "plans changed", *resp.CancelReason)
}

func TestCancel_Failures(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		userID string
		reason *string
		want   error
	}{
		{name: "foreign reservation", id: 1, userID: "bob", want: ErrReservationNotFound},
		{name: "missing reservation", id: 42, userID: "alice", want: ErrReservationNotFound},
		{name: "already started", id: 2, userID: "alice", want: ErrAlreadyStarted},
		{name: "already cancelled", id: 3, userID: "bob", want: ErrAlreadyCancelled},
		{name: "reason too long", id: 1, userID: "alice", reason: ptr.Ptr(strings.Repeat("x", 201)), want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Cancel(context.Background(), tt.id, tt.userID, tt.reason)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCancel_ConcurrentOnlyOneSucceeds(t *testing.T) {
	f := newFixture()

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		cancelled int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Cancel(context.Background(), 1, "alice", nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyCancelled):
				cancelled++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, cancelled)
}

func TestAdminCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Начавшееся чужое бронирование администратор отменить может
	res, err := f.svc.AdminCancel(ctx, 2, "room maintenance")
	require.NoError(t, err)
	assert.Equal(t, models.AdminCancelSuccess, res.Status)
	assert.Equal(t, "room maintenance", *res.Reservation.CancelReason)

	res, err = f.svc.AdminCancel(ctx, 2, "again")
	require.NoError(t, err)
	assert.Equal(t, models.AdminCancelAlreadyCancelled, res.Status)
	assert.Nil(t, res.Reservation)

	res, err = f.svc.AdminCancel(ctx, 99, "whatever")
	require.NoError(t, err)
	assert.Equal(t, models.AdminCancelNotFound, res.Status)

	_, err = f.svc.AdminCancel(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminList(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.AdminList(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	assert.Equal(t, "alice@example.com", resp.Reservations[0].UserEmail)
	assert.Equal(t, "Alpha", resp.Reservations[0].RoomName)
	assert.Equal(t, "Beta", resp.Reservations[1].RoomName)
	assert.Equal(t, "(no email)", resp.Reservations[2].UserEmail)

	// Один запрос в справочник на пользователя
	assert.Equal(t, 1, f.users.calls["alice"])

	active, err := f.svc.AdminList(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, active.Total)
}
