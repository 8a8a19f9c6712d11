package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	users           UserDirectory
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	users UserDirectory,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		users:           users,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронирование пользователя по ID
// Чужое бронирование выглядит как несуществующее
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%s", id, userID)

	reservation, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		s.logger.Error("GetByID: failed to load rooms: %v", err)
		return nil, err
	}

	return models.FromDomainReservation(reservation, names[reservation.RoomID]), nil
}

// GetUserReservations получает бронирования пользователя, новые первыми
func (s *Service) GetUserReservations(ctx context.Context, userID string, includeCancelled bool) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: user=%s, includeCancelled=%t", userID, includeCancelled)

	list, err := s.reservationRepo.GetByUser(ctx, userID, includeCancelled)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		s.logger.Error("GetUserReservations: failed to load rooms: %v", err)
		return nil, err
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%s", len(list), userID)
	return models.FromDomainReservationList(list, names), nil
}

// GetCancelledReservations получает отмененные бронирования пользователя, последние отмены первыми
func (s *Service) GetCancelledReservations(ctx context.Context, userID string) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCancelledReservations: user=%s", userID)

	list, err := s.reservationRepo.GetCancelledByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetCancelledReservations: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetCancelledReservations - repository error: %v", ErrInternal, err)
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		s.logger.Error("GetCancelledReservations: failed to load rooms: %v", err)
		return nil, err
	}

	return models.FromDomainReservationList(list, names), nil
}

// CanModify true, если бронирование существует, принадлежит пользователю и еще не началось
func (s *Service) CanModify(ctx context.Context, id int64, userID string) (bool, error) {
	reservation, err := s.reservationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return false, nil
		}
		s.logger.Error("CanModify: repository error for reservation id=%d: %v", id, err)
		return false, fmt.Errorf("%w: CanModify - repository error: %v", ErrInternal, err)
	}

	return !reservation.HasStarted(s.timeProvider.Now()), nil
}

// Cancel самостоятельная отмена бронирования владельцем
// Начавшееся бронирование отменить нельзя, причина по умолчанию domain.DefaultCancelReason
func (s *Service) Cancel(ctx context.Context, id int64, userID string, reason *string) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%s", id, userID)

	cancelReason := domain.DefaultCancelReason
	if reason != nil && strings.TrimSpace(*reason) != "" {
		cancelReason = strings.TrimSpace(*reason)
	}
	if utf8.RuneCountInString(cancelReason) > domain.MaxCancelReasonLength {
		s.logger.Warn("Cancel: reason too long for reservation id=%d", id)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	// 1. Бронирование пользователя
	reservation, err := s.getOwned(ctx, "Cancel", id, userID)
	if err != nil {
		return nil, err
	}

	// 2. Начавшееся бронирование отменить самостоятельно нельзя
	now := s.timeProvider.Now()
	if reservation.HasStarted(now) {
		s.logger.Warn("Cancel: reservation id=%d has already started", id)
		return nil, ErrAlreadyStarted
	}

	// 3. Переход Active -> Cancelled
	if err := reservation.Cancel(now, cancelReason); err != nil {
		s.logger.Warn("Cancel: reservation id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	// 4. Условная запись: конкурентная отмена получит ErrAlreadyCancelled
	cancelled, err := s.reservationRepo.Cancel(ctx, id, *reservation.Cancellation)
	if err != nil {
		return nil, s.mapCancelError("Cancel", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(cancelled, ""), nil
}

// AdminCancel отмена бронирования администратором
// Нет проверки владельца и начала бронирования, это модерация
func (s *Service) AdminCancel(ctx context.Context, id int64, reason string) (*models.AdminCancelResult, error) {
	s.logger.Info("AdminCancel: cancelling reservation id=%d", id)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("AdminCancel: reservation id=%d not found", id)
			return &models.AdminCancelResult{Status: models.AdminCancelNotFound}, nil
		}
		s.logger.Error("AdminCancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdminCancel - repository error: %v", ErrInternal, err)
	}

	if err := reservation.Cancel(s.timeProvider.Now(), reason); err != nil {
		s.logger.Warn("AdminCancel: reservation id=%d is already cancelled", id)
		return &models.AdminCancelResult{Status: models.AdminCancelAlreadyCancelled}, nil
	}

	cancelled, err := s.reservationRepo.Cancel(ctx, id, *reservation.Cancellation)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrAlreadyCancelled):
			s.logger.Warn("AdminCancel: reservation id=%d was cancelled concurrently", id)
			return &models.AdminCancelResult{Status: models.AdminCancelAlreadyCancelled}, nil
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return &models.AdminCancelResult{Status: models.AdminCancelNotFound}, nil
		}
		s.logger.Error("AdminCancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdminCancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AdminCancel: successfully cancelled reservation id=%d", id)
	return &models.AdminCancelResult{
		Status:      models.AdminCancelSuccess,
		Reservation: models.FromDomainReservation(cancelled, ""),
	}, nil
}

// AdminList список всех бронирований для администратора с именами комнат и e-mail владельцев
func (s *Service) AdminList(ctx context.Context, activeOnly bool) (*models.AdminReservationListResponse, error) {
	s.logger.Info("AdminList: activeOnly=%t", activeOnly)

	list, err := s.reservationRepo.ListAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminList - repository error: %v", ErrInternal, err)
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		s.logger.Error("AdminList: failed to load rooms: %v", err)
		return nil, err
	}

	// Один запрос в справочник на пользователя
	emails := make(map[string]string)

	resp := &models.AdminReservationListResponse{
		Reservations: make([]models.AdminReservationRow, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		email, ok := emails[r.UserID]
		if !ok {
			email = s.users.GetEmailWithGracefulDegradation(ctx, r.UserID)
			emails[r.UserID] = email
		}
		resp.Reservations = append(resp.Reservations, models.AdminReservationRow{
			ReservationResponse: *models.FromDomainReservation(r, names[r.RoomID]),
			UserEmail:           email,
		})
	}

	s.logger.Info("AdminList: fetched %d reservations", len(list))
	return resp, nil
}

func (s *Service) getOwned(ctx context.Context, op string, id int64, userID string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found for user=%s", op, id, userID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) mapCancelError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrAlreadyCancelled):
		s.logger.Warn("%s: reservation id=%d was cancelled concurrently", op, id)
		return ErrAlreadyCancelled
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) roomNames(ctx context.Context) (map[int64]string, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}
	names := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names, nil
}
