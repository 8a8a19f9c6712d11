package domain

import "time"

// Room переговорная комната
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	Equipment []Equipment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Equipment оборудование, которым может быть оснащена комната
type Equipment struct {
	ID   int64
	Name string
}

// EquipmentIDs возвращает ID оборудования комнаты
func (r *Room) EquipmentIDs() []int64 {
	ids := make([]int64, 0, len(r.Equipment))
	for _, e := range r.Equipment {
		ids = append(ids, e.ID)
	}
	return ids
}

// HasAllEquipment true, если у комнаты есть всё перечисленное оборудование
func (r *Room) HasAllEquipment(required []int64) bool {
	if len(required) == 0 {
		return true
	}

	present := make(map[int64]struct{}, len(r.Equipment))
	for _, e := range r.Equipment {
		present[e.ID] = struct{}{}
	}

	for _, id := range required {
		if _, ok := present[id]; !ok {
			return false
		}
	}
	return true
}

// DistinctIDs убирает повторы, сохраняя порядок
func DistinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
