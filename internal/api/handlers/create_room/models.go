package create_room

import "github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"

// RoomRequest HTTP request model
type RoomRequest struct {
	Name         string  `json:"name" validate:"notblank,max=80"`
	Capacity     int     `json:"capacity" validate:"min=1,max=500"`
	EquipmentIDs []int64 `json:"equipmentIds" validate:"dive,gt=0"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RoomRequest) ToServiceRequest() *models.RoomRequest {
	return &models.RoomRequest{
		Name:         r.Name,
		Capacity:     r.Capacity,
		EquipmentIDs: r.EquipmentIDs,
	}
}
