package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id int64, userID string) (*models.ReservationResponse, error)
	CanModify(ctx context.Context, id int64, userID string) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
