package validate_reservation

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFormat      = "некорректный формат, ожидается startDate YYYY-MM-DD и время HH:MM"
)

type Handler struct {
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

func NewHandler(timeProvider TimeProvider, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		timeProvider: timeProvider,
		loc:          loc,
		logger:       logger,
	}
}

// Handle POST /api/v1/reservations/validate
// Возвращает все нарушения сразу, чтобы форма показала их вместе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.parse(h.loc)
	if err != nil {
		h.logger.Warn("POST /reservations/validate - Failed to parse form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	violations := domain.ValidateDetailed(input.startTime, input.endTime, input.start, input.end,
		h.timeProvider.Now(), req.AllowPast)

	handlers.RespondJSON(w, http.StatusOK, fromViolations(violations))
}
