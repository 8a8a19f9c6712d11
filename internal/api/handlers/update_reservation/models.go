package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-RoomBooking/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	Title          string  `json:"title" validate:"notblank"`
	Notes          *string `json:"notes,omitempty"`
	AttendeesCount int     `json:"attendeesCount" validate:"required,gt=0"`
	Start          string  `json:"start" validate:"required"`
	End            string  `json:"end" validate:"required"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	RoomID         int64   `json:"roomId"`
	UserID         string  `json:"userId"`
	Title          string  `json:"title"`
	Notes          *string `json:"notes,omitempty"`
	AttendeesCount int     `json:"attendeesCount"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(id int64, userID string, loc *time.Location) (*updateReservation.Request, error) {
	start, err := handlers.ParseTime(r.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime(r.End, loc)
	if err != nil {
		return nil, err
	}

	return &updateReservation.Request{
		ID:             id,
		UserID:         userID,
		Title:          r.Title,
		Notes:          r.Notes,
		AttendeesCount: r.AttendeesCount,
		Start:          start,
		End:            end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response, loc *time.Location) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		RoomID:         resp.RoomID,
		UserID:         resp.UserID,
		Title:          resp.Title,
		Notes:          resp.Notes,
		AttendeesCount: resp.AttendeesCount,
		Start:          resp.Start.In(loc).Format(time.RFC3339),
		End:            resp.End.In(loc).Format(time.RFC3339),
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
