package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID             int64      `json:"id"`
	RoomID         int64      `json:"roomId"`
	RoomName       string     `json:"roomName,omitempty"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title"`
	Notes          *string    `json:"notes,omitempty"`
	AttendeesCount int        `json:"attendeesCount"`
	Start          time.Time  `json:"start"`
	End            time.Time  `json:"end"`
	IsCancelled    bool       `json:"isCancelled"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	CancelReason   *string    `json:"cancelReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// AdminReservationRow строка админского списка
type AdminReservationRow struct {
	ReservationResponse
	UserEmail string `json:"userEmail"`
}

// AdminReservationListResponse админский список бронирований
type AdminReservationListResponse struct {
	Reservations []AdminReservationRow `json:"reservations"`
	Total        int                   `json:"total"`
}

// AdminCancelStatus результат админской отмены
type AdminCancelStatus string

const (
	AdminCancelSuccess          AdminCancelStatus = "success"
	AdminCancelNotFound         AdminCancelStatus = "not_found"
	AdminCancelAlreadyCancelled AdminCancelStatus = "already_cancelled"
)

// AdminCancelResult статус и, при успехе, отмененное бронирование
type AdminCancelResult struct {
	Status      AdminCancelStatus    `json:"status"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation, roomName string) *ReservationResponse {
	resp := &ReservationResponse{
		ID:             r.ID,
		RoomID:         r.RoomID,
		RoomName:       roomName,
		UserID:         r.UserID,
		Title:          r.Title,
		Notes:          r.Notes,
		AttendeesCount: r.AttendeesCount,
		Start:          r.Start,
		End:            r.End,
		IsCancelled:    r.IsCancelled(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.Cancellation != nil {
		at := r.Cancellation.At
		reason := r.Cancellation.Reason
		resp.CancelledAt = &at
		resp.CancelReason = &reason
	}

	return resp
}

// FromDomainReservationList конвертирует список, подставляя имена комнат
func FromDomainReservationList(list []*domain.Reservation, roomNames map[int64]string) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r, roomNames[r.RoomID]))
	}
	return resp
}
