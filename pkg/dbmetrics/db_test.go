package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
)

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil)
	ctx := context.Background()

	assert.Same(t, wrapped, GetExecutor(ctx, wrapped))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RecordsQueryMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.New("test")
	wrapped := Wrap(db, m)

	mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = wrapped.ExecContext(context.Background(), "UPDATE rooms SET name = $1", "A")
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM rooms").WillReturnError(assert.AnError)
	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM rooms")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RecordPoolStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.New("test")
	wrapped := Wrap(db, m)
	wrapped.recordPoolStats()

	assert.GreaterOrEqual(t, testutil.ToFloat64(m.DBOpenConnections), 0.0)
}
