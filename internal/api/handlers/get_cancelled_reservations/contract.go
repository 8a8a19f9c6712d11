package get_cancelled_reservations

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

type ReservationService interface {
	GetCancelledReservations(ctx context.Context, userID string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
