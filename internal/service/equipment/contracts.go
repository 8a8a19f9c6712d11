package equipment

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	List(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Create(ctx context.Context, name string) (*domain.Equipment, error)
	Update(ctx context.Context, id int64, name string) (*domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
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
