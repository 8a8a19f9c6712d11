package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_reservation"
)

const (
	msgMissingUserID      = "не указан пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректное время, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgRoomNotFound       = "комната не найдена"
	msgConflict           = "комната уже забронирована на выбранное время"
)

const operation = "create"

type Handler struct {
	useCase CreateReservationUseCase
	metrics MetricsRecorder
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, metrics MetricsRecorder, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.loc)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	h.metrics.RecordReservation(operation, handlers.Outcome(err))
	if err != nil {
		var capacityErr *domain.CapacityExceededError
		switch {
		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Conflict: room_id=%d, user_id=%s", req.RoomID, userID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /reservations - Capacity exceeded: room_id=%d, attendees=%d", req.RoomID, req.AttendeesCount)
			handlers.RespondDomainError(w, err)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: room_id=%d, user_id=%s, error=%v",
				req.RoomID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, room_id=%d, user_id=%s",
		result.ID, result.RoomID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
