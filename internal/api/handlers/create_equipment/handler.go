package create_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req EquipmentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	item, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, equipment.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/equipment - Failed to create equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/equipment - Equipment created successfully: equipment_id=%d", item.ID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}
