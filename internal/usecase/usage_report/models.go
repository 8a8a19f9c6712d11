package usage_report

// Request период отчета, nil означает текущий год/месяц
type Request struct {
	Year  *int
	Month *int
}

// Response отчет по использованию комнат за месяц
type Response struct {
	Year  int
	Month int
	Rows  []Row
}

// Row суммарное время бронирований одной комнаты
type Row struct {
	RoomID       int64
	RoomName     string
	TotalMinutes int
}
