package usage_report

import (
	"context"

	usageReport "github.com/m04kA/SMC-RoomBooking/internal/usecase/usage_report"
)

type UsageReportUseCase interface {
	Execute(ctx context.Context, req *usageReport.Request) (*usageReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
