package admin_cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations"
	"github.com/m04kA/SMC-RoomBooking/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса, требуется причина отмены"
	msgNotFound             = "бронирование не найдено"
	msgAlreadyCancelled     = "бронирование уже отменено"
)

const operation = "admin_cancel"

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

// Handle PATCH /api/v1/admin/reservations/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req AdminCancelRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdminCancel(r.Context(), reservationID, req.Reason)
	if err != nil {
		h.metrics.RecordReservation(operation, handlers.Outcome(err))
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PATCH /admin/reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.metrics.RecordReservation(operation, string(result.Status))

	switch result.Status {
	case models.AdminCancelNotFound:
		h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case models.AdminCancelAlreadyCancelled:
		h.logger.Warn("PATCH /admin/reservations/{id}/cancel - Already cancelled: reservation_id=%d", reservationID)
		handlers.RespondConflict(w, msgAlreadyCancelled)

	default:
		h.logger.Info("PATCH /admin/reservations/{id}/cancel - Reservation cancelled by admin: reservation_id=%d", reservationID)
		handlers.RespondJSON(w, http.StatusOK, result)
	}
}
