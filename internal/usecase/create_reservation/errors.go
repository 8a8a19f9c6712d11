package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("create_reservation: room not found: %w", domain.ErrNotFound)

	// ErrConflict возвращается, когда комната уже занята на выбранный интервал
	ErrConflict = fmt.Errorf("create_reservation: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_reservation: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// internalError оборачивает ошибку хранилища в ErrInternal.
// 40001 возвращается как есть, чтобы DoSerializable повторил транзакцию
func internalError(action string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, action, err)
}
