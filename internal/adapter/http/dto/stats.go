package dto

type DayCountItem struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type StatsItem struct {
	TotalCount     int            `json:"total_count"`
	CompletedCount int            `json:"completed_count"`
	PendingCount   int            `json:"pending_count"`
	CompletionRate int            `json:"completion_rate"`
	OverdueCount   int            `json:"overdue_count"`
	MaxDayCount    int            `json:"max_day_count"`
	Weekly         []DayCountItem `json:"weekly"`
}
