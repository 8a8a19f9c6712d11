package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Room, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByRoom(ctx context.Context, roomID int64, activeOnly bool) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// RoomLocker взаимное исключение по ID комнаты в пределах процесса
type RoomLocker interface {
	Lock(roomID int64) (unlock func())
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
