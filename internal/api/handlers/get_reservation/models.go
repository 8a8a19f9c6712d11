package get_reservation

import "github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"

// ReservationResponse бронирование и признак возможности изменения
type ReservationResponse struct {
	models.ReservationResponse
	CanModify bool `json:"canModify"`
}
