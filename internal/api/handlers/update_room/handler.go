package update_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "комната не найдена"
	msgEquipmentNotFound  = "выбранное оборудование не найдено"
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

// Handle PUT /api/v1/admin/rooms/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req RoomRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	room, err := h.service.Update(r.Context(), roomID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("PUT /admin/rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rooms.ErrEquipmentNotFound):
			h.logger.Warn("PUT /admin/rooms/{id} - Equipment not found: %v", err)
			handlers.RespondBadRequest(w, msgEquipmentNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("PUT /admin/rooms/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/rooms/{id} - Failed to update room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/rooms/{id} - Room updated successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, room)
}
