package search_rooms

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// UseCase поиск свободных комнат
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

// Execute ищет комнаты по вместимости, оборудованию и отсутствию пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchRooms: start=%s, end=%s, capacity=%d, equipment=%v",
		req.Start.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.End.Format(domain.DateFormat+" "+domain.TimeFormat), req.RequiredCapacity, req.EquipmentIDs)

	// 1. Валидация параметров
	criteria, err := uc.validate(req)
	if err != nil {
		uc.logger.Warn("SearchRooms: invalid input: %v", err)
		return nil, err
	}

	var (
		rooms        []*domain.Room
		reservations []*domain.Reservation
	)

	// 2. Каталог и бронирования читаются одним снимком
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rooms, err = uc.roomRepo.List(txCtx)
		if err != nil {
			uc.logger.Error("SearchRooms: failed to list rooms: %v", err)
			return fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
		}

		// 3. Только бронирования, пересекающие окно
		reservations, err = uc.reservationRepo.ListActiveOverlapping(txCtx, criteria.Start, criteria.End)
		if err != nil {
			uc.logger.Error("SearchRooms: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Конвейер фильтров
	found := Search(rooms, reservations, criteria)

	uc.logger.Info("SearchRooms: found %d of %d rooms", len(found), len(rooms))

	resp := &Response{Rooms: make([]Room, 0, len(found))}
	for _, r := range found {
		room := Room{ID: r.ID, Name: r.Name, Capacity: r.Capacity, Equipment: make([]Equipment, 0, len(r.Equipment))}
		for _, e := range r.Equipment {
			room.Equipment = append(room.Equipment, Equipment{ID: e.ID, Name: e.Name})
		}
		resp.Rooms = append(resp.Rooms, room)
	}

	return resp, nil
}

func (uc *UseCase) validate(req *Request) (Criteria, error) {
	capacity := req.RequiredCapacity
	if capacity == 0 {
		capacity = domain.MinRoomCapacity
	}
	if capacity < domain.MinRoomCapacity || capacity > domain.MaxRoomCapacity {
		return Criteria{}, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinRoomCapacity, domain.MaxRoomCapacity)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return Criteria{}, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	// Окно поиска подчиняется тем же правилам, что и бронирование
	violations := domain.ValidateDetailed(
		domain.TimeOfDay(req.Start), domain.TimeOfDay(req.End),
		req.Start, req.End, uc.timeProvider.Now(), false,
	)
	if len(violations) > 0 {
		return Criteria{}, domain.NewValidationErrorFromViolations(violations)
	}

	return Criteria{
		Start:            req.Start,
		End:              req.End,
		RequiredCapacity: capacity,
		EquipmentIDs:     domain.DistinctIDs(req.EquipmentIDs),
	}, nil
}
