package delete_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
)

const (
	msgInvalidRoomID         = "некорректный ID комнаты"
	msgNotFound              = "комната не найдена"
	msgHasActiveReservations = "нельзя удалить комнату с активными бронированиями"
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

// Handle DELETE /api/v1/admin/rooms/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	if err := h.service.Delete(r.Context(), roomID); err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("DELETE /admin/rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rooms.ErrRoomHasActiveReservations):
			h.logger.Warn("DELETE /admin/rooms/{id} - Room has active reservations: room_id=%d", roomID)
			handlers.RespondConflict(w, msgHasActiveReservations)

		default:
			h.logger.Error("DELETE /admin/rooms/{id} - Failed to delete room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/rooms/{id} - Room deleted successfully: room_id=%d", roomID)
	w.WriteHeader(http.StatusNoContent)
}
