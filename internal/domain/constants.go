package domain

import "time"

// Правила бронирования, общие для обоих валидаторов
const (
	WorkDayStart           = 8 * time.Hour
	WorkDayEnd             = 20 * time.Hour
	MaxReservationDuration = 8 * time.Hour
)

// Ограничения на поля
const (
	MaxTitleLength         = 120
	MaxNotesLength         = 500
	MaxCancelReasonLength  = 200
	MaxRoomNameLength      = 80
	MaxEquipmentNameLength = 60
	MinRoomCapacity        = 1
	MaxRoomCapacity        = 500
	MinAttendees           = 1
	MaxAttendees           = 100
)

// DefaultCancelReason причина отмены, если пользователь её не указал
const DefaultCancelReason = "Cancelled by user"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Имена полей для ошибок валидации
const (
	FieldStartDate = "StartDate"
	FieldStartTime = "StartTime"
	FieldEndTime   = "EndTime"
)
