package admin_cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

type ReservationService interface {
	AdminCancel(ctx context.Context, id int64, reason string) (*models.AdminCancelResult, error)
}

type MetricsRecorder interface {
	RecordReservation(operation, outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
