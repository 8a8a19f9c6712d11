package get_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgNotFound      = "комната не найдена"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	room, err := h.service.Get(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			h.logger.Warn("GET /rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /rooms/{id} - Failed to get room: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, room)
}
