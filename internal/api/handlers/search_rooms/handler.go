package search_rooms

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	searchRooms "github.com/m04kA/SMC-RoomBooking/internal/usecase/search_rooms"
)

const (
	msgInvalidStart     = "некорректный параметр start"
	msgInvalidEnd       = "некорректный параметр end"
	msgInvalidCapacity  = "некорректный параметр capacity"
	msgInvalidEquipment = "некорректный параметр equipment, ожидается список ID через запятую"
)

type Handler struct {
	useCase SearchRoomsUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase SearchRoomsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available
// Query params: start, end (required), capacity (optional), equipment (optional, "1,2")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := handlers.ParseTime(query.Get("start"), h.loc)
	if err != nil {
		h.logger.Warn("GET /rooms/available - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	end, err := handlers.ParseTime(query.Get("end"), h.loc)
	if err != nil {
		h.logger.Warn("GET /rooms/available - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}

	capacity := 0
	if raw := query.Get("capacity"); raw != "" {
		capacity, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /rooms/available - Invalid capacity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCapacity)
			return
		}
	}

	equipmentIDs, err := handlers.QueryInt64List(r, "equipment")
	if err != nil {
		h.logger.Warn("GET /rooms/available - Invalid equipment: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipment)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &searchRooms.Request{
		Start:            start,
		End:              end,
		RequiredCapacity: capacity,
		EquipmentIDs:     equipmentIDs,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /rooms/available - Validation failed: %v", err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Error("GET /rooms/available - Failed to search rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/available - Found %d rooms", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
