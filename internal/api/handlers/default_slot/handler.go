package default_slot

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// DefaultSlotResponse предложенный интервал для формы
type DefaultSlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Handler struct {
	timeProvider TimeProvider
}

func NewHandler(timeProvider TimeProvider) *Handler {
	return &Handler{timeProvider: timeProvider}
}

// Handle GET /api/v1/reservations/default-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	start, end := domain.DefaultTimeSlot(h.timeProvider.Now())

	handlers.RespondJSON(w, http.StatusOK, DefaultSlotResponse{
		Start:     start.Format(time.RFC3339),
		End:       end.Format(time.RFC3339),
		StartDate: start.Format(domain.DateFormat),
		StartTime: start.Format(domain.TimeFormat),
		EndTime:   end.Format(domain.TimeFormat),
	})
}
