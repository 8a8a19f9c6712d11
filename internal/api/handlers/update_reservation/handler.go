package update_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	updateReservation "github.com/m04kA/SMC-RoomBooking/internal/usecase/update_reservation"
)

const (
	msgMissingUserID        = "не указан пользователь"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректное время, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgNotFound             = "бронирование не найдено"
	msgAlreadyStarted       = "бронирование уже началось и не может быть изменено"
	msgAlreadyCancelled     = "бронирование отменено и не может быть изменено"
	msgConflict             = "комната уже забронирована на выбранное время"
)

const operation = "update"

type Handler struct {
	useCase UpdateReservationUseCase
	metrics MetricsRecorder
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, metrics MetricsRecorder, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		loc:     loc,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID, h.loc)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	h.metrics.RecordReservation(operation, handlers.Outcome(err))
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d, user_id=%s", reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrAlreadyStarted):
			h.logger.Warn("PUT /reservations/{id} - Already started: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyStarted)

		case errors.Is(err, updateReservation.ErrAlreadyCancelled):
			h.logger.Warn("PUT /reservations/{id} - Already cancelled: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, updateReservation.ErrConflict):
			h.logger.Warn("PUT /reservations/{id} - Conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrCapacityExceeded),
			errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /reservations/{id} - Rejected: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%s",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.loc))
}
