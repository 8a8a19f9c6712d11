package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	RoomID         int64
	UserID         string
	Title          string
	Notes          *string // опционально
	AttendeesCount int
	Start          time.Time
	End            time.Time
}

// Response модель ответа с созданным бронированием
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
