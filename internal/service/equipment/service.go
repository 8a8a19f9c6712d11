package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/equipment"
	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment/models"
)

// Service сервис справочника оборудования
type Service struct {
	equipmentRepo EquipmentRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса оборудования
func NewService(equipmentRepo EquipmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// List возвращает справочник оборудования по имени
func (s *Service) List(ctx context.Context) (*models.EquipmentListResponse, error) {
	list, err := s.equipmentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.EquipmentListResponse{
		Equipment: make([]models.EquipmentResponse, 0, len(list)),
		Total:     len(list),
	}
	for i := range list {
		resp.Equipment = append(resp.Equipment, *models.FromDomainEquipment(&list[i]))
	}
	return resp, nil
}

// Get возвращает оборудование по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.EquipmentResponse, error) {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("Get", id, err)
	}
	return models.FromDomainEquipment(e), nil
}

// Create добавляет оборудование
func (s *Service) Create(ctx context.Context, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	e, err := s.equipmentRepo.Create(ctx, name)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created equipment id=%d, name=%q", e.ID, e.Name)
	return models.FromDomainEquipment(e), nil
}

// Update переименовывает оборудование
func (s *Service) Update(ctx context.Context, id int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	e, err := s.equipmentRepo.Update(ctx, id, name)
	if err != nil {
		return nil, s.mapError("Update", id, err)
	}

	s.logger.Info("Update: renamed equipment id=%d to %q", id, name)
	return models.FromDomainEquipment(e), nil
}

// Delete удаляет оборудование и его связи с комнатами
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.equipmentRepo.Delete(txCtx, id)
	})
	if err != nil {
		return s.mapError("Delete", id, err)
	}

	s.logger.Info("Delete: deleted equipment id=%d", id)
	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
		s.logger.Warn("%s: equipment id=%d not found", op, id)
		return ErrEquipmentNotFound
	}
	s.logger.Error("%s: repository error for equipment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxEquipmentNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxEquipmentNameLength)
	}
	return name, nil
}
