package create_reservation

import (
	"context"
	"errors"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	roomRepo        RoomRepository
	reservationRepo ReservationRepository
	roomLocks       RoomLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	reservationRepo ReservationRepository,
	roomLocks RoomLocker,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		roomLocks:       roomLocks,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта и запись идут под блокировкой комнаты в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, room=%d, start=%s, end=%s, attendees=%d",
		req.UserID, req.RoomID, req.Start.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.End.Format(domain.DateFormat+" "+domain.TimeFormat), req.AttendeesCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: invalid input: %v", err)
		return nil, err
	}

	// 2. Правила бронирования (до обращения к БД)
	now := uc.timeProvider.Now()
	if err := domain.ValidateSingle(req.Start, req.End, now); err != nil {
		uc.logger.Warn("CreateReservation: rules violated: %v", err)
		return nil, err
	}

	// 3. Блокируем комнату в пределах процесса
	unlock := uc.roomLocks.Lock(req.RoomID)
	defer unlock()

	var result *domain.Reservation

	// 4. Чтение, проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Комната с блокировкой строки
		room, err := uc.roomRepo.GetByIDForUpdate(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
			return internalError("failed to get room", err)
		}

		// 4.2. Вместимость
		if req.AttendeesCount > room.Capacity {
			uc.logger.Warn("CreateReservation: attendees=%d exceed capacity=%d of room id=%d",
				req.AttendeesCount, room.Capacity, room.ID)
			return &domain.CapacityExceededError{Capacity: room.Capacity}
		}

		// 4.3. Конфликт с активными бронированиями комнаты
		existing, err := uc.reservationRepo.GetByRoom(txCtx, room.ID, true)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations of room id=%d: %v", room.ID, err)
			return internalError("failed to get reservations", err)
		}

		if domain.HasConflict(existing, req.Start, req.End, nil) {
			uc.logger.Warn("CreateReservation: room id=%d is already booked", room.ID)
			return ErrConflict
		}

		// 4.4. Сохраняем
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			RoomID:         room.ID,
			UserID:         req.UserID,
			Title:          strings.TrimSpace(req.Title),
			Notes:          req.Notes,
			AttendeesCount: req.AttendeesCount,
			Start:          req.Start,
			End:            req.End,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("CreateReservation: exclusion constraint rejected room id=%d", room.ID)
				return ErrConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return internalError("failed to create reservation", err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная транзакция победила во всех попытках
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateReservation: serialization retries exhausted for room id=%d", req.RoomID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		RoomID:         result.RoomID,
		UserID:         result.UserID,
		Title:          result.Title,
		Notes:          result.Notes,
		AttendeesCount: result.AttendeesCount,
		Start:          result.Start,
		End:            result.End,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
