package equipment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

// Repository репозиторий справочника оборудования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает всё оборудование, отсортированное по имени
func (r *Repository) List(ctx context.Context) ([]domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("equipment").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Equipment, 0)
	for rows.Next() {
		var e domain.Equipment
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("%w: List - scan equipment: %w", ErrScanRow, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// GetByID получает оборудование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("equipment").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var e domain.Equipment
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Name)
	if err == sql.ErrNoRows {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %w", ErrScanRow, err)
	}

	return &e, nil
}

// Create добавляет оборудование в справочник
func (r *Repository) Create(ctx context.Context, name string) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	e := domain.Equipment{Name: name}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &e, nil
}

// Update переименовывает оборудование
func (r *Repository) Update(ctx context.Context, id int64, name string) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("equipment").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil, ErrEquipmentNotFound
	}

	return &domain.Equipment{ID: id, Name: name}, nil
}

// Delete удаляет оборудование вместе со связями room_equipment
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("room_equipment").
		Where(squirrel.Eq{"equipment_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete links query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - delete links: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("equipment").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}
