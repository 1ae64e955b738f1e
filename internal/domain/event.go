package domain

// Event is an externally supplied record of a campus event.
// Dates are formatted as YYYY-MM-DD.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ScheduleEntry is an externally supplied class schedule record.
type ScheduleEntry struct {
	Course       string `json:"course"`
	Instructor   string `json:"instructor"`
	Days         string `json:"days"`
	Time         string `json:"time"`
	StartingDate string `json:"starting_date"`
	Mode         string `json:"mode"`
	City         string `json:"city"`
}
