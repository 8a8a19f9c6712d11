package update_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "оборудование не найдено"
)

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

// Handle PUT /api/v1/admin/equipment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	var req EquipmentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /admin/equipment/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	item, err := h.service.Update(r.Context(), equipmentID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, equipment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /admin/equipment/{id} - Failed to update equipment: equipment_id=%d, error=%v",
				equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/equipment/{id} - Equipment updated successfully: equipment_id=%d", equipmentID)
	handlers.RespondJSON(w, http.StatusOK, item)
}
