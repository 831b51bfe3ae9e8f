package get_available_dates

// Request модель запроса сводки по горизонту бронирования
type Request struct {
	ServiceID   int64
	TherapistID int64
}

// Response по одной сводке на каждую дату горизонта, по порядку дат
type Response struct {
	ServiceID   int64
	TherapistID int64
	Dates       []DateSummary
}

// DateSummary доступность одной даты
type DateSummary struct {
	Date           string // YYYY-MM-DD
	AvailableCount int
	HasSchedule    bool
	IsDayOff       bool
}
