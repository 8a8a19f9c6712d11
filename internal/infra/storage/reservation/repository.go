package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

// SQLSTATE exclusion_violation
const exclusionViolationCode = "23P01"

var reservationColumns = []string{
	"id",
	"room_id",
	"user_id",
	"title",
	"notes",
	"attendees_count",
	"start_at",
	"end_at",
	"is_cancelled",
	"cancelled_at",
	"cancel_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое активное бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion constraint возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"user_id",
			"title",
			"notes",
			"attendees_count",
			"start_at",
			"end_at",
		).
		Values(
			reservation.RoomID,
			reservation.UserID,
			reservation.Title,
			reservation.Notes,
			reservation.AttendeesCount,
			reservation.Start,
			reservation.End,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if isExclusionViolation(err) {
		return nil, ErrOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByIDForUser получает бронирование по ID, только если оно принадлежит пользователю
func (r *Repository) GetByIDForUser(ctx context.Context, id int64, userID string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByIDForUser", squirrel.Eq{"id": id, "user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
	}

	return reservation, nil
}

// GetByRoom получает бронирования комнаты, опционально только активные
func (r *Repository) GetByRoom(ctx context.Context, roomID int64, activeOnly bool) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("start_at")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_cancelled": false})
	}

	return r.list(ctx, "GetByRoom", builder)
}

// ListActiveOverlapping получает все активные бронирования, пересекающие [from, to)
func (r *Repository) ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"is_cancelled": false}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("room_id", "start_at")

	return r.list(ctx, "ListActiveOverlapping", builder)
}

// GetByUser получает бронирования пользователя, новые первыми
func (r *Repository) GetByUser(ctx context.Context, userID string, includeCancelled bool) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC")

	if !includeCancelled {
		builder = builder.Where(squirrel.Eq{"is_cancelled": false})
	}

	return r.list(ctx, "GetByUser", builder)
}

// GetCancelledByUser получает отмененные бронирования пользователя, последние отмены первыми
func (r *Repository) GetCancelledByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID, "is_cancelled": true}).
		OrderBy("cancelled_at DESC")

	return r.list(ctx, "GetCancelledByUser", builder)
}

// ListAll получает все бронирования для администратора, новые первыми
func (r *Repository) ListAll(ctx context.Context, activeOnly bool) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("start_at DESC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_cancelled": false})
	}

	return r.list(ctx, "ListAll", builder)
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return reservations, nil
}

// Update перезаписывает изменяемые поля активного бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("title", reservation.Title).
		Set("notes", reservation.Notes).
		Set("attendees_count", reservation.AttendeesCount).
		Set("start_at", reservation.Start).
		Set("end_at", reservation.End).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID, "is_cancelled": false}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if isExclusionViolation(err) {
		return nil, ErrOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// Cancel отменяет бронирование условным UPDATE ... WHERE is_cancelled = false
// Из двух конкурентных отмен строку изменит только одна, вторая получит ErrAlreadyCancelled
func (r *Repository) Cancel(ctx context.Context, id int64, cancellation domain.Cancellation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("is_cancelled", true).
		Set("cancelled_at", cancellation.At).
		Set("cancel_reason", cancellation.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_cancelled": false}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return reservation, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	// Ни одна строка не изменилась: либо бронирования нет, либо оно уже отменено
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyCancelled
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		notes                sql.NullString
		isCancelled          bool
		cancelledAt          sql.NullTime
		cancelReason         sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.RoomID,
		&reservation.UserID,
		&reservation.Title,
		&notes,
		&reservation.AttendeesCount,
		&reservation.Start,
		&reservation.End,
		&isCancelled,
		&cancelledAt,
		&cancelReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		reservation.Notes = &notes.String
	}
	if isCancelled {
		reservation.Cancellation = &domain.Cancellation{
			At:     cancelledAt.Time,
			Reason: cancelReason.String,
		}
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolationCode
}
