package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64, userID string, reason *string) (*models.ReservationResponse, error)
}

type MetricsRecorder interface {
	RecordReservation(operation, outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
