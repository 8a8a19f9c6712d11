package search_rooms

import searchRooms "github.com/m04kA/SMC-RoomBooking/internal/usecase/search_rooms"

// EquipmentResponse HTTP response model
type EquipmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoomResponse HTTP response model
type RoomResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Capacity  int                 `json:"capacity"`
	Equipment []EquipmentResponse `json:"equipment"`
}

// SearchRoomsResponse HTTP response model
type SearchRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRooms.Response) *SearchRoomsResponse {
	result := &SearchRoomsResponse{
		Rooms: make([]RoomResponse, 0, len(resp.Rooms)),
		Total: len(resp.Rooms),
	}

	for _, room := range resp.Rooms {
		equipment := make([]EquipmentResponse, 0, len(room.Equipment))
		for _, e := range room.Equipment {
			equipment = append(equipment, EquipmentResponse{ID: e.ID, Name: e.Name})
		}
		result.Rooms = append(result.Rooms, RoomResponse{
			ID:        room.ID,
			Name:      room.Name,
			Capacity:  room.Capacity,
			Equipment: equipment,
		})
	}

	return result
}
