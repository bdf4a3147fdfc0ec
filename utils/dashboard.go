package utils

import (
	"context"
	"time"

	"vinyasaclub/models"
	"vinyasaclub/repository"
)

const (
	seriesDays    = 14
	averageDays   = 7
	recentPerfAge = 7 * 24 * time.Hour
)

// BuildDashboardSummary scans the store for the dashboard rollups as of now.
func BuildDashboardSummary(ctx context.Context, repo *repository.DashboardRepository, now time.Time, loc *time.Location) (*models.DashboardSummary, error) {
	days := LastNDays(now, loc, seriesDays)
	data, err := repo.GetDashboardData(ctx, days[0], days[len(days)-1], now.Add(-recentPerfAge))
	if err != nil {
		return nil, err
	}
	summary := SummarizeDashboard(data, days)
	return &summary, nil
}

// SummarizeDashboard computes the summary from loaded data. days lists the
// series window oldest first; its last entry is today.
func SummarizeDashboard(data *repository.DashboardData, days []string) models.DashboardSummary {
	present := make(map[string]int, len(days))
	for _, a := range data.Attendance {
		if a.Status == models.StatusPresent {
			present[a.Date]++
		}
	}

	series := make([]models.SeriesPoint, 0, len(days))
	for _, d := range days {
		series = append(series, models.SeriesPoint{Date: d[5:], Present: present[d]})
	}

	avg := 0.0
	if data.TotalMembers > 0 && len(series) > 0 {
		window := series
		if len(window) > averageDays {
			window = window[len(window)-averageDays:]
		}
		sum := 0.0
		for _, p := range window {
			sum += float64(p.Present) / float64(data.TotalMembers) * 100
		}
		avg = sum / float64(len(window))
	}

	today := 0
	if len(days) > 0 {
		today = present[days[len(days)-1]]
	}

	return models.DashboardSummary{
		TotalMembers:           data.TotalMembers,
		TodayPresent:           today,
		SevenDayAvg:            avg,
		AttendanceSeries:       series,
		RecentPerformanceCount: data.RecentPerfCount,
	}
}
