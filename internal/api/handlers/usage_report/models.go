package usage_report

import usageReport "github.com/m04kA/SMC-RoomBooking/internal/usecase/usage_report"

// RowResponse HTTP response model
type RowResponse struct {
	RoomID       int64  `json:"roomId"`
	RoomName     string `json:"roomName"`
	TotalMinutes int    `json:"totalMinutes"`
}

// UsageReportResponse HTTP response model
type UsageReportResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Rows  []RowResponse `json:"rows"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *usageReport.Response) *UsageReportResponse {
	rows := make([]RowResponse, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, RowResponse{
			RoomID:       row.RoomID,
			RoomName:     row.RoomName,
			TotalMinutes: row.TotalMinutes,
		})
	}

	return &UsageReportResponse{
		Year:  resp.Year,
		Month: resp.Month,
		Rows:  rows,
	}
}
