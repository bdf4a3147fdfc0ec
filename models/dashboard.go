package models

type SeriesPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
}

type DashboardSummary struct {
	TotalMembers           int           `json:"totalMembers"`
	TodayPresent           int           `json:"todayPresent"`
	SevenDayAvg            float64       `json:"sevenDayAvg"`
	AttendanceSeries       []SeriesPoint `json:"attendanceSeries"`
	RecentPerformanceCount int           `json:"recentPerformanceCount"`
}
