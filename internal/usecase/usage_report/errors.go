package usage_report

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrInvalidPeriod возвращается при некорректном годе или месяце
	ErrInvalidPeriod = fmt.Errorf("usage_report: invalid period: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usage_report: internal error")
)
