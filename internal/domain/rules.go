package domain

import (
	"fmt"
	"time"
)

var (
	msgStartOutsideHours = fmt.Sprintf("Start time must be within business hours (%s-%s).", formatClock(WorkDayStart), formatClock(WorkDayEnd))
	msgEndOutsideHours   = fmt.Sprintf("End time must be within business hours (%s-%s).", formatClock(WorkDayStart), formatClock(WorkDayEnd))
	msgEndBeforeStart    = "End date/time must be later than start date/time."
	msgInPast            = "Cannot create a reservation in the past."
	msgTooLong           = fmt.Sprintf("Maximum reservation duration is %g hours.", MaxReservationDuration.Hours())
)

// Violation нарушение одного правила с полями формы, к которым оно относится
type Violation struct {
	Message string
	Fields  []string
}

// TimeOfDay время от начала суток t в её часовом поясе
func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// IsWithinBusinessHours 08:00 <= timeOfDay <= 20:00, обе границы включены
func IsWithinBusinessHours(timeOfDay time.Duration) bool {
	return timeOfDay >= WorkDayStart && timeOfDay <= WorkDayEnd
}

// ValidateDetailed проверяет все правила независимо и возвращает все нарушения.
// startTime и endTime - время суток из формы, start и end - итоговые моменты.
// allowPast отключает проверку на бронирование в прошлом
func ValidateDetailed(startTime, endTime time.Duration, start, end, now time.Time, allowPast bool) []Violation {
	var violations []Violation

	if !IsWithinBusinessHours(startTime) {
		violations = append(violations, Violation{Message: msgStartOutsideHours, Fields: []string{FieldStartTime}})
	}

	if !IsWithinBusinessHours(endTime) {
		violations = append(violations, Violation{Message: msgEndOutsideHours, Fields: []string{FieldEndTime}})
	}

	if !end.After(start) {
		violations = append(violations, Violation{Message: msgEndBeforeStart, Fields: []string{FieldEndTime}})
	}

	if !allowPast && start.Before(now) {
		violations = append(violations, Violation{Message: msgInPast, Fields: []string{FieldStartDate}})
	}

	if end.Sub(start) > MaxReservationDuration {
		violations = append(violations, Violation{Message: msgTooLong, Fields: []string{FieldEndTime}})
	}

	return violations
}

// ValidateSingle возвращает первое нарушенное правило в порядке:
// конец после начала, не в прошлом, начало и конец в рабочих часах, длительность
func ValidateSingle(start, end, now time.Time) error {
	switch {
	case !end.After(start):
		return NewValidationError(msgEndBeforeStart, FieldEndTime)
	case start.Before(now):
		return NewValidationError(msgInPast, FieldStartDate)
	case !IsWithinBusinessHours(TimeOfDay(start)):
		return NewValidationError(msgStartOutsideHours, FieldStartTime)
	case !IsWithinBusinessHours(TimeOfDay(end)):
		return NewValidationError(msgEndOutsideHours, FieldEndTime)
	case end.Sub(start) > MaxReservationDuration:
		return NewValidationError(msgTooLong, FieldEndTime)
	}
	return nil
}

// DefaultTimeSlot предлагает следующий полный час длиной в час.
// Если слот выходит за рабочие часы, предлагает завтра 09:00-10:00
func DefaultTimeSlot(now time.Time) (time.Time, time.Time) {
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	start := hour.Add(time.Hour)
	end := start.Add(time.Hour)

	if !IsWithinBusinessHours(TimeOfDay(start)) || !IsWithinBusinessHours(TimeOfDay(end)) {
		tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		start = tomorrow.Add(9 * time.Hour)
		end = tomorrow.Add(10 * time.Hour)
	}

	return start, end
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
