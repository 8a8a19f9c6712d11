package update_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = fmt.Errorf("update_reservation: reservation not found: %w", domain.ErrNotFound)

	// ErrRoomNotFound возвращается, когда комната бронирования не найдена
	ErrRoomNotFound = fmt.Errorf("update_reservation: room not found: %w", domain.ErrNotFound)

	// ErrAlreadyStarted возвращается, когда бронирование уже началось
	ErrAlreadyStarted = fmt.Errorf("update_reservation: %w", domain.ErrAlreadyStarted)

	// ErrAlreadyCancelled возвращается при попытке изменить отмененное бронирование
	ErrAlreadyCancelled = fmt.Errorf("update_reservation: %w", domain.ErrAlreadyCancelled)

	// ErrConflict возвращается, когда новый интервал пересекается с другим бронированием
	ErrConflict = fmt.Errorf("update_reservation: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("update_reservation: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)

// internalError оборачивает ошибку хранилища в ErrInternal.
// 40001 возвращается как есть, чтобы DoSerializable повторил транзакцию
func internalError(action string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, action, err)
}
