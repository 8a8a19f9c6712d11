package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"
)

// Service сервис каталога комнат
type Service struct {
	roomRepo      RoomRepository
	equipmentRepo EquipmentRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(
	roomRepo RoomRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:      roomRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// List возвращает все комнаты по имени с оборудованием
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.RoomListResponse{
		Rooms: make([]models.RoomResponse, 0, len(rooms)),
		Total: len(rooms),
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, *models.FromDomainRoom(room))
	}

	s.logger.Info("List: fetched %d rooms", len(rooms))
	return resp, nil
}

// Get возвращает комнату по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRoomError("Get", id, err)
	}
	return models.FromDomainRoom(room), nil
}

// Create создает комнату с набором оборудования
func (s *Service) Create(ctx context.Context, req *models.RoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room name=%q, capacity=%d", req.Name, req.Capacity)

	name, err := validateRoom(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Room
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		equipmentIDs, err := s.checkEquipment(txCtx, req.EquipmentIDs)
		if err != nil {
			return err
		}

		room, err := s.roomRepo.Create(txCtx, &domain.Room{Name: name, Capacity: req.Capacity}, equipmentIDs)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		created, err = s.roomRepo.GetByID(txCtx, room.ID)
		if err != nil {
			return fmt.Errorf("%w: Create - reload room: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("Create", err)
	}

	s.logger.Info("Create: created room id=%d", created.ID)
	return models.FromDomainRoom(created), nil
}

// Update меняет имя, вместимость и заменяет набор оборудования
func (s *Service) Update(ctx context.Context, id int64, req *models.RoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Update: updating room id=%d", id)

	name, err := validateRoom(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Room
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку комнаты, чтобы не разойтись с созданием бронирований
		if _, err := s.roomRepo.GetByIDForUpdate(txCtx, id); err != nil {
			return s.mapRoomError("Update", id, err)
		}

		equipmentIDs, err := s.checkEquipment(txCtx, req.EquipmentIDs)
		if err != nil {
			return err
		}

		if _, err := s.roomRepo.Update(txCtx, &domain.Room{ID: id, Name: name, Capacity: req.Capacity}, equipmentIDs); err != nil {
			return s.mapRoomError("Update", id, err)
		}

		updated, err = s.roomRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRoomError("Update", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.logFailure("Update", err)
	}

	s.logger.Info("Update: updated room id=%d", id)
	return models.FromDomainRoom(updated), nil
}

// Delete удаляет комнату, если на неё нет активных бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting room id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.roomRepo.GetByIDForUpdate(txCtx, id); err != nil {
			return s.mapRoomError("Delete", id, err)
		}

		hasActive, err := s.roomRepo.HasActiveReservations(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - check reservations: %v", ErrInternal, err)
		}
		if hasActive {
			return ErrRoomHasActiveReservations
		}

		if err := s.roomRepo.Delete(txCtx, id); err != nil {
			return s.mapRoomError("Delete", id, err)
		}
		return nil
	})
	if err != nil {
		return s.logFailure("Delete", err)
	}

	s.logger.Info("Delete: deleted room id=%d", id)
	return nil
}

// checkEquipment убирает дубликаты и проверяет, что всё выбранное оборудование существует
func (s *Service) checkEquipment(ctx context.Context, ids []int64) ([]int64, error) {
	distinct := domain.DistinctIDs(ids)
	if len(distinct) == 0 {
		return distinct, nil
	}

	all, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list equipment: %v", ErrInternal, err)
	}

	known := make(map[int64]struct{}, len(all))
	for _, e := range all {
		known[e.ID] = struct{}{}
	}
	for _, id := range distinct {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrEquipmentNotFound, id)
		}
	}

	return distinct, nil
}

func (s *Service) mapRoomError(op string, id int64, err error) error {
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	if errors.Is(err, roomRepo.ErrRoomReferenced) {
		return ErrRoomHasActiveReservations
	}
	return fmt.Errorf("%w: %s - repository error for room id=%d: %v", ErrInternal, op, id, err)
}

func (s *Service) logFailure(op string, err error) error {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: %v", op, err)
	} else {
		s.logger.Warn("%s: %v", op, err)
	}
	return err
}

func validateRoom(req *models.RoomRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxRoomNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxRoomNameLength)
	}
	if req.Capacity < domain.MinRoomCapacity || req.Capacity > domain.MaxRoomCapacity {
		return "", fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinRoomCapacity, domain.MaxRoomCapacity)
	}
	return name, nil
}
