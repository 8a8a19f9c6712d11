package delete_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
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

// Handle DELETE /api/v1/admin/equipment/{id}
// Связи с комнатами удаляются вместе с оборудованием
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	if err := h.service.Delete(r.Context(), equipmentID); err != nil {
		if errors.Is(err, equipment.ErrEquipmentNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/equipment/{id} - Failed to delete equipment: equipment_id=%d, error=%v",
			equipmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/equipment/{id} - Equipment deleted successfully: equipment_id=%d", equipmentID)
	w.WriteHeader(http.StatusNoContent)
}
