package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
)

// SQLSTATE serialization_failure
const serializationFailureCode = "40001"

var (
	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrSerialization возвращается, когда все попытки сериализуемой транзакции закончились конфликтом
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// TxBeginner интерфейс для начала транзакций
// Реализуется *dbmetrics.DB и SQLDB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// SQLDB адаптирует *sql.DB к TxBeginner
type SQLDB struct {
	DB *sql.DB
}

func (s SQLDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := s.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db      TxBeginner
	retries int
}

// NewTransactionManager создает менеджер транзакций
// retries - сколько раз повторять сериализуемую транзакцию после 40001
func NewTransactionManager(db TxBeginner, retries int) *TransactionManager {
	if retries < 0 {
		retries = 0
	}
	return &TransactionManager{db: db, retries: retries}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции REPEATABLE READ,
// все запросы внутри fn видят один снимок
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При serialization failure транзакция повторяется целиком
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt <= m.retries; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsSerializationFailure(err) {
			return err
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return fmt.Errorf("%w: %v", ErrSerialization, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback: %v (original: %w)", ErrTransaction, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		// commit сериализуемой транзакции тоже может вернуть 40001
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что err (или обёрнутая в нём ошибка) это 40001
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
