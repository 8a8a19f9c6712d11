package get_user_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
)

const (
	msgMissingUserID           = "не указан пользователь"
	msgInvalidIncludeCancelled = "некорректный параметр includeCancelled"
)

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

// Handle GET /api/v1/reservations
// Query params: includeCancelled (optional, default false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	includeCancelled, err := handlers.QueryBool(r, "includeCancelled", false)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid includeCancelled: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
		return
	}

	list, err := h.service.GetUserReservations(r.Context(), userID, includeCancelled)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to get reservations: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
