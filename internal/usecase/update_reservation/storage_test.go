package update_reservation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBooking/pkg/clock"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/keymutex"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

var sqlReservationColumns = []string{
	"id", "room_id", "user_id", "title", "notes", "attendees_count", "start_at", "end_at",
	"is_cancelled", "cancelled_at", "cancel_reason", "created_at", "updated_at",
}

func TestExecute_StatementSerializationFailureBecomesConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	uc := NewUseCase(
		roomRepo.NewRepository(wrapped),
		reservationRepo.NewRepository(wrapped),
		keymutex.New[int64](),
		txmanager.NewTransactionManager(wrapped, 0),
		clock.NewFake(now),
		nopLogger{},
	)

	// владелец и комната читаются до транзакции
	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), "owner").
		WillReturnRows(sqlmock.NewRows(sqlReservationColumns).
			AddRow(1, 1, "owner", "Sync", nil, 2, tomorrow(10, 0), tomorrow(11, 0), false, nil, nil, now, now))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
	mock.ExpectRollback()

	_, err = uc.Execute(context.Background(), updateRequest(tomorrow(10, 30), tomorrow(11, 30)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
