package domain

import "time"

// HasConflict проверяет, пересекается ли интервал [start, end) хотя бы с одним
// активным бронированием из existing. Бронирование с ID == *excludeID пропускается,
// чтобы при редактировании оно не конфликтовало само с собой
func HasConflict(existing []*Reservation, start, end time.Time, excludeID *int64) bool {
	for _, r := range existing {
		if r.IsCancelled() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.OverlapsWith(start, end) {
			return true
		}
	}
	return false
}
