package usage_report

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
)

// UseCase отчет по использованию комнат за месяц
type UseCase struct {
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute строит отчет за указанный (или текущий) месяц
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Период по умолчанию - текущий месяц
	today := uc.timeProvider.Now()
	year := ptr.Deref(req.Year, today.Year())
	month := ptr.Deref(req.Month, int(today.Month()))

	uc.logger.Info("UsageReport: year=%d, month=%d", year, month)

	if year < 1 || year > 9999 || month < 1 || month > 12 {
		uc.logger.Warn("UsageReport: invalid period year=%d month=%d", year, month)
		return nil, fmt.Errorf("%w: year=%d month=%d", ErrInvalidPeriod, year, month)
	}

	// 2. Окно месяца в локальной зоне сервиса
	from, to := MonthWindow(year, time.Month(month), today.Location())

	var (
		reservations []*domain.Reservation
		rooms        []*domain.Room
	)

	// 3. Бронирования, пересекающие окно, и комнаты одним снимком
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservations, err = uc.reservationRepo.ListActiveOverlapping(txCtx, from, to)
		if err != nil {
			uc.logger.Error("UsageReport: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		rooms, err = uc.roomRepo.List(txCtx)
		if err != nil {
			uc.logger.Error("UsageReport: failed to list rooms: %v", err)
			return fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Агрегация
	rows := Aggregate(reservations, rooms, from, to)

	uc.logger.Info("UsageReport: %d rooms used in %04d-%02d", len(rows), year, month)

	return &Response{Year: year, Month: month, Rows: rows}, nil
}
