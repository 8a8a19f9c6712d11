package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound комната или бронирование не найдены (или не принадлежат пользователю)
	ErrNotFound = errors.New("domain: not found")

	// ErrConflict комната уже забронирована на этот интервал
	ErrConflict = errors.New("domain: room is already booked for the selected time slot")

	// ErrAlreadyStarted бронирование уже началось, самостоятельно изменить его нельзя
	ErrAlreadyStarted = errors.New("domain: reservation has already started")

	// ErrAlreadyCancelled бронирование уже отменено
	ErrAlreadyCancelled = errors.New("domain: reservation is already cancelled")

	// ErrCapacityExceeded участников больше, чем вмещает комната
	ErrCapacityExceeded = errors.New("domain: number of attendees exceeds room capacity")

	// ErrValidation нарушено правило бронирования
	ErrValidation = errors.New("domain: validation failed")
)

// ValidationError нарушение правила бронирования с полями, к которым оно относится
type ValidationError struct {
	Message string
	Fields  []string
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NewValidationErrorFromViolations собирает ошибку из результата ValidateDetailed
func NewValidationErrorFromViolations(violations []Violation) *ValidationError {
	messages := make([]string, 0, len(violations))
	var fields []string
	for _, v := range violations {
		messages = append(messages, v.Message)
		fields = append(fields, v.Fields...)
	}
	return &ValidationError{Message: strings.Join(messages, " "), Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CapacityExceededError содержит фактическую вместимость комнаты для отображения
type CapacityExceededError struct {
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("Number of attendees cannot exceed room capacity (%d).", e.Capacity)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
