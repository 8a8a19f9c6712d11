package admin_list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
)

const msgInvalidActiveOnly = "некорректный параметр activeOnly"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
// Query params: activeOnly (optional, default true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := handlers.QueryBool(r, "activeOnly", true)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid activeOnly: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActiveOnly)
		return
	}

	list, err := h.service.AdminList(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reservations - Listed %d reservations", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
