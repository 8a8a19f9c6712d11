package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDForUser(ctx context.Context, id int64, userID string) (*domain.Reservation, error)
	GetByUser(ctx context.Context, userID string, includeCancelled bool) ([]*domain.Reservation, error)
	GetCancelledByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListAll(ctx context.Context, activeOnly bool) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, cancellation domain.Cancellation) (*domain.Reservation, error)
}

// RoomRepository интерфейс репозитория комнат (для имен комнат в ответах)
type RoomRepository interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

// UserDirectory справочник пользователей для e-mail в админском списке
type UserDirectory interface {
	GetEmailWithGracefulDegradation(ctx context.Context, userID string) string
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
