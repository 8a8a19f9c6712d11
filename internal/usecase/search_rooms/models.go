package search_rooms

import "time"

// Request параметры поиска свободных комнат
type Request struct {
	Start            time.Time
	End              time.Time
	RequiredCapacity int     // 0 означает 1
	EquipmentIDs     []int64 // все должны присутствовать в комнате
}

// Response найденные комнаты, отсортированные по имени
type Response struct {
	Rooms []Room
}

type Room struct {
	ID        int64
	Name      string
	Capacity  int
	Equipment []Equipment
}

type Equipment struct {
	ID   int64
	Name string
}
