package get_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations"
)

const (
	msgMissingUserID        = "не указан пользователь"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
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

// Handle GET /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservation, err := h.service.GetByID(r.Context(), reservationID, userID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%d, user_id=%s", reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	canModify, err := h.service.CanModify(r.Context(), reservationID, userID)
	if err != nil {
		h.logger.Error("GET /reservations/{id} - Failed to check modification: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ReservationResponse{
		ReservationResponse: *reservation,
		CanModify:           canModify && !reservation.IsCancelled,
	})
}
