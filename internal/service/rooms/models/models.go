package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// RoomRequest данные для создания и обновления комнаты
type RoomRequest struct {
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	EquipmentIDs []int64 `json:"equipmentIds"`
}

// EquipmentResponse оборудование комнаты
type EquipmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Capacity  int                 `json:"capacity"`
	Equipment []EquipmentResponse `json:"equipment"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// RoomListResponse список комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// FromDomainRoom конвертирует domain модель в response
func FromDomainRoom(room *domain.Room) *RoomResponse {
	equipment := make([]EquipmentResponse, 0, len(room.Equipment))
	for _, e := range room.Equipment {
		equipment = append(equipment, EquipmentResponse{ID: e.ID, Name: e.Name})
	}

	return &RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		Equipment: equipment,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}
