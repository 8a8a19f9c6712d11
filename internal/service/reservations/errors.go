package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = fmt.Errorf("reservations: reservation not found: %w", domain.ErrNotFound)

	// ErrAlreadyStarted возвращается при попытке отменить начавшееся бронирование
	ErrAlreadyStarted = fmt.Errorf("reservations: %w", domain.ErrAlreadyStarted)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("reservations: %w", domain.ErrAlreadyCancelled)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reservations: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
