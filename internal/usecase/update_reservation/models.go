package update_reservation

import "time"

// Request модель запроса на изменение бронирования
// Перезаписываются все изменяемые поля
type Request struct {
	ID             int64
	UserID         string
	Title          string
	Notes          *string
	AttendeesCount int
	Start          time.Time
	End            time.Time
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID             int64
	RoomID         int64
	UserID         string
	Title          string
	Notes          *string
	AttendeesCount int
	Start          time.Time
	End            time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
