package cancel_reservation

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
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgAlreadyStarted       = "бронирование уже началось и не может быть отменено"
	msgAlreadyCancelled     = "бронирование уже отменено"
)

const operation = "cancel"

type Handler struct {
	service ReservationService
	metrics MetricsRecorder
	logger  Logger
}

func NewHandler(service ReservationService, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/cancel
// Тело запроса необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), reservationID, userID, req.Reason)
	h.metrics.RecordReservation(operation, handlers.Outcome(err))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d, user_id=%s",
				reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAlreadyStarted):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already started: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyStarted)

		case errors.Is(err, reservations.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already cancelled: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, user_id=%s",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
