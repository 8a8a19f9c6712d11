package domain

import "time"

// Cancellation данные об отмене бронирования
// Наличие значения означает, что бронирование в терминальном состоянии
type Cancellation struct {
	At     time.Time
	Reason string
}

// Reservation бронирование комнаты на интервал [Start, End)
type Reservation struct {
	ID             int64
	RoomID         int64
	UserID         string
	Title          string
	Notes          *string
	AttendeesCount int
	Start          time.Time
	End            time.Time

	// nil - активное, иначе отменено
	Cancellation *Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation has not been cancelled
func (r *Reservation) IsActive() bool {
	return r.Cancellation == nil
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Cancellation != nil
}

// HasStarted true, если начало бронирования не позже now
func (r *Reservation) HasStarted(now time.Time) bool {
	return !r.Start.After(now)
}

// Duration длительность бронирования
func (r *Reservation) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Cancel переводит бронирование в состояние Cancelled
// Повторная отмена запрещена
func (r *Reservation) Cancel(at time.Time, reason string) error {
	if r.Cancellation != nil {
		return ErrAlreadyCancelled
	}
	r.Cancellation = &Cancellation{At: at, Reason: reason}
	return nil
}

// OverlapsWith проверяет пересечение с интервалом [start, end)
func (r *Reservation) OverlapsWith(start, end time.Time) bool {
	return Overlaps(r.Start, r.End, start, end)
}
