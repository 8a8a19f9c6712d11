package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, записывающая длительность запросов в Prometheus
// Если metrics == nil, работает как прозрачный прокси
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectPoolStats(defaultStatsInterval, stopCh)
	}
	return wrapped
}

// Unwrap возвращает исходное соединение
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin", start, err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

func (d *DB) observe(operation string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	d.metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		d.metrics.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordPoolStats()
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordPoolStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
	d.metrics.DBInUse.Set(float64(stats.InUse))
	d.metrics.DBIdle.Set(float64(stats.Idle))
	d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
}

// Tx транзакция с записью метрик
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe("tx_exec", start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe("tx_query", start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe("tx_query_row", start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.parent.observe("commit", start, err)
	return err
}

func (t *Tx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	t.parent.observe("rollback", start, err)
	return err
}
