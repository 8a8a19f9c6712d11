package create_equipment

import "github.com/m04kA/SMC-RoomBooking/internal/service/equipment/models"

// EquipmentRequest HTTP request model
type EquipmentRequest struct {
	Name string `json:"name" validate:"notblank,max=60"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *EquipmentRequest) ToServiceRequest() *models.EquipmentRequest {
	return &models.EquipmentRequest{Name: r.Name}
}
