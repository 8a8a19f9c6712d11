package get_equipment

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment/models"
)

type EquipmentService interface {
	Get(ctx context.Context, id int64) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
