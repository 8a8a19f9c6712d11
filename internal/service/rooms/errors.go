package rooms

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("rooms: room not found: %w", domain.ErrNotFound)

	// ErrEquipmentNotFound возвращается, когда выбрано несуществующее оборудование
	ErrEquipmentNotFound = fmt.Errorf("rooms: equipment not found: %w", domain.ErrNotFound)

	// ErrRoomHasActiveReservations возвращается при удалении комнаты с активными бронированиями
	ErrRoomHasActiveReservations = fmt.Errorf("rooms: room has active reservations: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("rooms: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms: internal error")
)
