package models

import "github.com/m04kA/SMC-RoomBooking/internal/domain"

// EquipmentRequest данные для создания и переименования оборудования
type EquipmentRequest struct {
	Name string `json:"name"`
}

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EquipmentListResponse список оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
	Total     int                 `json:"total"`
}

// FromDomainEquipment конвертирует domain модель в response
func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	return &EquipmentResponse{ID: e.ID, Name: e.Name}
}
