package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда запись нарушает exclusion constraint по (room_id, интервал)
	ErrOverlap = errors.New("reservation.repository: reservation overlaps an active reservation")

	// ErrAlreadyCancelled возвращается, когда условная отмена не затронула ни одной строки
	ErrAlreadyCancelled = errors.New("reservation.repository: reservation already cancelled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
