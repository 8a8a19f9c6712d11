package usage_report

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// MonthWindow возвращает полуоткрытый интервал [начало месяца, начало следующего)
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// Aggregate суммирует длительность активных бронирований, пересекающих [from, to), по комнатам.
// В сумму идет полная длительность бронирования, без обрезки по границам месяца,
// поэтому бронирование через границу месяцев учитывается целиком в обоих месяцах.
// Комнаты без минут и бронирования неизвестных комнат в отчет не попадают
func Aggregate(reservations []*domain.Reservation, rooms []*domain.Room, from, to time.Time) []Row {
	totals := make(map[int64]time.Duration)
	for _, r := range reservations {
		if r.IsCancelled() || !r.OverlapsWith(from, to) {
			continue
		}
		totals[r.RoomID] += r.Duration()
	}

	rows := make([]Row, 0, len(totals))
	for _, room := range rooms {
		total, ok := totals[room.ID]
		if !ok {
			continue
		}
		minutes := int(total / time.Minute)
		if minutes <= 0 {
			continue
		}
		rows = append(rows, Row{RoomID: room.ID, RoomName: room.Name, TotalMinutes: minutes})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		return rows[i].RoomName < rows[j].RoomName
	})

	return rows
}
