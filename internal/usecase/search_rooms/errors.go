package search_rooms

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах поиска
	ErrInvalidInput = fmt.Errorf("search_rooms: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_rooms: internal error")
)
