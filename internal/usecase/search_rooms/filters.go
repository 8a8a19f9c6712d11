package search_rooms

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Criteria условия поиска для конвейера фильтров
type Criteria struct {
	Start            time.Time
	End              time.Time
	RequiredCapacity int
	EquipmentIDs     []int64
}

// Filter одна стадия конвейера над снимком комнат
type Filter func(rooms []*domain.Room) []*domain.Room

// Pipeline собирает стадии поиска. Фильтры независимы и коммутируют,
// дешевые идут первыми
func Pipeline(c Criteria, reservations []*domain.Reservation) []Filter {
	return []Filter{
		ByCapacity(c.RequiredCapacity),
		ByEquipment(c.EquipmentIDs),
		ByAvailability(reservations, c.Start, c.End),
	}
}

// Search применяет конвейер и сортирует результат по имени
func Search(rooms []*domain.Room, reservations []*domain.Reservation, c Criteria) []*domain.Room {
	result := rooms
	for _, filter := range Pipeline(c, reservations) {
		result = filter(result)
	}
	return SortByName(result)
}

// ByCapacity оставляет комнаты с вместимостью не меньше required
func ByCapacity(required int) Filter {
	return func(rooms []*domain.Room) []*domain.Room {
		return keep(rooms, func(r *domain.Room) bool {
			return r.Capacity >= required
		})
	}
}

// ByEquipment оставляет комнаты, где есть всё требуемое оборудование
func ByEquipment(required []int64) Filter {
	return func(rooms []*domain.Room) []*domain.Room {
		if len(required) == 0 {
			return rooms
		}
		return keep(rooms, func(r *domain.Room) bool {
			return r.HasAllEquipment(required)
		})
	}
}

// ByAvailability оставляет комнаты без активных бронирований, пересекающих [start, end)
func ByAvailability(reservations []*domain.Reservation, start, end time.Time) Filter {
	byRoom := make(map[int64][]*domain.Reservation)
	for _, r := range reservations {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	return func(rooms []*domain.Room) []*domain.Room {
		return keep(rooms, func(r *domain.Room) bool {
			return !domain.HasConflict(byRoom[r.ID], start, end, nil)
		})
	}
}

// SortByName сортирует по имени побайтно (с учетом регистра)
func SortByName(rooms []*domain.Room) []*domain.Room {
	sorted := make([]*domain.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func keep(rooms []*domain.Room, predicate func(*domain.Room) bool) []*domain.Room {
	result := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if predicate(r) {
			result = append(result, r)
		}
	}
	return result
}
