package search_rooms

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
}

// TransactionManager читает каталог и бронирования одним снимком
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
