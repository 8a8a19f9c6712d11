package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

// SQLSTATE foreign_key_violation
const foreignKeyViolationCode = "23503"

var roomColumns = []string{"id", "name", "capacity", "created_at", "updated_at"}

// Repository репозиторий комнат и их оборудования (rooms + room_equipment)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает комнату по ID вместе с оборудованием
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := r.getByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	equipment, err := r.loadEquipment(ctx, []int64{room.ID})
	if err != nil {
		return nil, err
	}
	room.Equipment = equipment[room.ID]

	return room, nil
}

// GetByIDForUpdate получает комнату с блокировкой строки (SELECT ... FOR UPDATE)
// Имеет смысл только внутри транзакции: все создания/изменения бронирований комнаты
// выстраиваются в очередь на этой блокировке
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var room domain.Room
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

// List возвращает все комнаты с оборудованием, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy(`name COLLATE "C"`, "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var rooms []*domain.Room
	ids := make([]int64, 0)
	for rows.Next() {
		var room domain.Room
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan room: %w", ErrScanRow, err)
		}
		room.CreatedAt = createdAt.Time
		room.UpdatedAt = updatedAt.Time
		rooms = append(rooms, &room)
		ids = append(ids, room.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}

	if len(rooms) == 0 {
		return rooms, nil
	}

	equipment, err := r.loadEquipment(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		room.Equipment = equipment[room.ID]
	}

	return rooms, nil
}

// loadEquipment загружает оборудование для набора комнат одним запросом
func (r *Repository) loadEquipment(ctx context.Context, roomIDs []int64) (map[int64][]domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("re.room_id", "e.id", "e.name").
		From("room_equipment re").
		Join("equipment e ON e.id = re.equipment_id").
		Where(squirrel.Eq{"re.room_id": roomIDs}).
		OrderBy("re.room_id", "e.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadEquipment - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadEquipment - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Equipment, len(roomIDs))
	for rows.Next() {
		var roomID int64
		var e domain.Equipment
		if err := rows.Scan(&roomID, &e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("%w: loadEquipment - scan equipment: %w", ErrScanRow, err)
		}
		result[roomID] = append(result[roomID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadEquipment - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// Create создает комнату и связи с оборудованием
// Вызывать внутри транзакции, чтобы комната не осталась без связей при ошибке
func (r *Repository) Create(ctx context.Context, room *domain.Room, equipmentIDs []int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("name", "capacity").
		Values(room.Name, room.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	if err := r.addEquipment(ctx, room.ID, domain.DistinctIDs(equipmentIDs)); err != nil {
		return nil, err
	}

	return room, nil
}

// Update обновляет имя и вместимость, затем заменяет набор оборудования:
// снятые связи удаляются, новые добавляются
func (r *Repository) Update(ctx context.Context, room *domain.Room, equipmentIDs []int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("name", room.Name).
		Set("capacity", room.Capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": room.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	selected := domain.DistinctIDs(equipmentIDs)

	deleteBuilder := psqlbuilder.Delete("room_equipment").
		Where(squirrel.Eq{"room_id": room.ID})
	if len(selected) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"equipment_id": selected})
	}

	query, args, err = deleteBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete links query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete links: %w", ErrExecQuery, err)
	}

	if err := r.addEquipment(ctx, room.ID, selected); err != nil {
		return nil, err
	}

	return room, nil
}

func (r *Repository) addEquipment(ctx context.Context, roomID int64, equipmentIDs []int64) error {
	if len(equipmentIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("room_equipment").
		Columns("room_id", "equipment_id")
	for _, id := range equipmentIDs {
		builder = builder.Values(roomID, id)
	}

	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: addEquipment - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: addEquipment - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет комнату, её связи с оборудованием и историю отмененных бронирований.
// Активные бронирования не трогаются: если они есть, вернется ErrRoomReferenced
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"room_id": id, "is_cancelled": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete history query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - delete history: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("room_equipment").
		Where(squirrel.Eq{"room_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete links query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - delete links: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isForeignKeyViolation(err) {
		return ErrRoomReferenced
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// HasActiveReservations проверяет, есть ли у комнаты неотмененные бронирования
func (r *Repository) HasActiveReservations(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"room_id": id, "is_cancelled": false})

	subQuery, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveReservations - build query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, "SELECT EXISTS ("+subQuery+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasActiveReservations - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == foreignKeyViolationCode
	}
	return false
}
