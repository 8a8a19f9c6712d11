package equipment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = fmt.Errorf("equipment: equipment not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("equipment: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("equipment: internal error")
)
