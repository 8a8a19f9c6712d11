package validate_reservation

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// ValidateReservationRequest поля формы бронирования
// Начало и конец находятся в один день startDate
type ValidateReservationRequest struct {
	StartDate string `json:"startDate" validate:"required"` // "2030-03-15"
	StartTime string `json:"startTime" validate:"required"` // "10:00"
	EndTime   string `json:"endTime" validate:"required"`   // "11:30"
	AllowPast bool   `json:"allowPast"`
}

// ViolationResponse нарушение правила с полями формы
type ViolationResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

// ValidateReservationResponse результат проверки формы
type ValidateReservationResponse struct {
	Valid      bool                `json:"valid"`
	Violations []ViolationResponse `json:"violations"`
}

// formInput разобранные поля формы
type formInput struct {
	startTime time.Duration
	endTime   time.Duration
	start     time.Time
	end       time.Time
}

func (r *ValidateReservationRequest) parse(loc *time.Location) (*formInput, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.StartDate, loc)
	if err != nil {
		return nil, err
	}
	startClock, err := time.Parse(domain.TimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}
	endClock, err := time.Parse(domain.TimeFormat, r.EndTime)
	if err != nil {
		return nil, err
	}

	startTime := domain.TimeOfDay(startClock)
	endTime := domain.TimeOfDay(endClock)

	return &formInput{
		startTime: startTime,
		endTime:   endTime,
		start:     date.Add(startTime),
		end:       date.Add(endTime),
	}, nil
}

func fromViolations(violations []domain.Violation) *ValidateReservationResponse {
	resp := &ValidateReservationResponse{
		Valid:      len(violations) == 0,
		Violations: make([]ViolationResponse, 0, len(violations)),
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, ViolationResponse{Message: v.Message, Fields: v.Fields})
	}
	return resp
}
