package rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Create(ctx context.Context, room *domain.Room, equipmentIDs []int64) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room, equipmentIDs []int64) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
	HasActiveReservations(ctx context.Context, id int64) (bool, error)
}

// EquipmentRepository интерфейс репозитория оборудования (проверка выбранных ID)
type EquipmentRepository interface {
	List(ctx context.Context) ([]domain.Equipment, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
