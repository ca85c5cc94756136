package domain

// AnalyticsSnapshot 实时计算，不落库
type AnalyticsSnapshot struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Completed      int `json:"completed"`
	TodayCompleted int `json:"todayCompleted"`
}
