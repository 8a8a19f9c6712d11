package get_cancelled_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
)

const msgMissingUserID = "не указан пользователь"

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

// Handle GET /api/v1/reservations/cancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/cancelled - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	list, err := h.service.GetCancelledReservations(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /reservations/cancelled - Failed to get reservations: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
