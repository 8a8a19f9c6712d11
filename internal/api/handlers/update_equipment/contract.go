package update_equipment

import (
	"context"

	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment/models"
)

type EquipmentService interface {
	Update(ctx context.Context, id int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
