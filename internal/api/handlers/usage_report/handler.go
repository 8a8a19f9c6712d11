package usage_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	usageReport "github.com/m04kA/SMC-RoomBooking/internal/usecase/usage_report"
)

const (
	msgInvalidYear   = "некорректный параметр year"
	msgInvalidMonth  = "некорректный параметр month"
	msgInvalidPeriod = "некорректный период отчета"
)

type Handler struct {
	useCase UsageReportUseCase
	logger  Logger
}

func NewHandler(useCase UsageReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/usage
// Query params: year, month (optional, по умолчанию текущий месяц)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req usageReport.Request

	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /admin/reports/usage - Invalid year: %v", err)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
		req.Year = &year
	}

	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /admin/reports/usage - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		req.Month = &month
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usageReport.ErrInvalidPeriod) {
			h.logger.Warn("GET /admin/reports/usage - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /admin/reports/usage - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reports/usage - Report built: year=%d, month=%d, rows=%d",
		result.Year, result.Month, len(result.Rows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
