package update_reservation

import (
	"context"
	"errors"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

// UseCase use case для изменения бронирования владельцем
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

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, user=%s, start=%s, end=%s, attendees=%d",
		req.ID, req.UserID, req.Start.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.End.Format(domain.DateFormat+" "+domain.TimeFormat), req.AttendeesCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: invalid input: %v", err)
		return nil, err
	}

	// 2. Узнаем комнату, чтобы взять её блокировку
	current, err := uc.getOwned(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Блокируем комнату в пределах процесса
	unlock := uc.roomLocks.Lock(current.RoomID)
	defer unlock()

	var result *domain.Reservation

	// 4. Повторное чтение, проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Комната с блокировкой строки
		room, err := uc.roomRepo.GetByIDForUpdate(txCtx, current.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("UpdateReservation: room id=%d not found", current.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get room id=%d: %v", current.RoomID, err)
			return internalError("failed to get room", err)
		}

		// 4.2. Бронирование могли изменить, пока мы ждали блокировку
		reservation, err := uc.getOwned(txCtx, req)
		if err != nil {
			return err
		}

		// 4.3. Уже начавшееся или отмененное бронирование менять нельзя
		now := uc.timeProvider.Now()
		if reservation.HasStarted(now) {
			uc.logger.Warn("UpdateReservation: reservation id=%d has already started", reservation.ID)
			return ErrAlreadyStarted
		}
		if reservation.IsCancelled() {
			uc.logger.Warn("UpdateReservation: reservation id=%d is cancelled", reservation.ID)
			return ErrAlreadyCancelled
		}

		// 4.4. Правила бронирования для нового интервала
		if err := domain.ValidateSingle(req.Start, req.End, now); err != nil {
			uc.logger.Warn("UpdateReservation: rules violated: %v", err)
			return err
		}

		// 4.5. Вместимость
		if req.AttendeesCount > room.Capacity {
			uc.logger.Warn("UpdateReservation: attendees=%d exceed capacity=%d of room id=%d",
				req.AttendeesCount, room.Capacity, room.ID)
			return &domain.CapacityExceededError{Capacity: room.Capacity}
		}

		// 4.6. Конфликт со всеми бронированиями комнаты, кроме самого себя
		existing, err := uc.reservationRepo.GetByRoom(txCtx, room.ID, true)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get reservations of room id=%d: %v", room.ID, err)
			return internalError("failed to get reservations", err)
		}

		if domain.HasConflict(existing, req.Start, req.End, ptr.Ptr(reservation.ID)) {
			uc.logger.Warn("UpdateReservation: room id=%d is already booked", room.ID)
			return ErrConflict
		}

		// 4.7. Сохраняем
		reservation.Title = strings.TrimSpace(req.Title)
		reservation.Notes = req.Notes
		reservation.AttendeesCount = req.AttendeesCount
		reservation.Start = req.Start
		reservation.End = req.End

		updated, err := uc.reservationRepo.Update(txCtx, reservation)
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrOverlap):
				uc.logger.Warn("UpdateReservation: exclusion constraint rejected room id=%d", room.ID)
				return ErrConflict
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrAlreadyCancelled
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return internalError("failed to update reservation", err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateReservation: serialization retries exhausted for reservation id=%d", req.ID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)

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

// getOwned загружает бронирование с учетом владельца
func (uc *UseCase) getOwned(ctx context.Context, req *Request) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByIDForUser(ctx, req.ID, req.UserID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found for user=%s", req.ID, req.UserID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ID, err)
		return nil, internalError("failed to get reservation", err)
	}
	return reservation, nil
}
