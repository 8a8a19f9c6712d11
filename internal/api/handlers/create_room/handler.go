package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/admin/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	room, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrEquipmentNotFound):
			h.logger.Warn("POST /admin/rooms - Equipment not found: %v", err)
			handlers.RespondBadRequest(w, msgEquipmentNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /admin/rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/rooms - Failed to create room: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rooms - Room created successfully: room_id=%d", room.ID)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
