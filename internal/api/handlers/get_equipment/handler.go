package get_equipment

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

// Handle GET /api/v1/equipment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	item, err := h.service.Get(r.Context(), equipmentID)
	if err != nil {
		if errors.Is(err, equipment.ErrEquipmentNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /equipment/{id} - Failed to get equipment: equipment_id=%d, error=%v", equipmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}
