package repository

import (
	"context"
	"time"

	"vinyasaclub/models"
)

// DashboardRepository gathers what the dashboard summary is computed from.
type DashboardRepository struct {
	MemberRepo      MemberRepository
	AttendanceRepo  AttendanceRepository
	PerformanceRepo PerformanceRepository
}

func NewDashboardRepository(members MemberRepository, attendance AttendanceRepository, performance PerformanceRepository) *DashboardRepository {
	return &DashboardRepository{
		MemberRepo:      members,
		AttendanceRepo:  attendance,
		PerformanceRepo: performance,
	}
}

type DashboardData struct {
	TotalMembers    int
	Attendance      []models.Attendance
	RecentPerfCount int
}

// GetDashboardData loads member count, attendance between from and to
// inclusive, and the number of performance records created after since.
func (r *DashboardRepository) GetDashboardData(ctx context.Context, from, to string, since time.Time) (*DashboardData, error) {
	total, err := r.MemberRepo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := r.AttendanceRepo.ListAttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	recent, err := r.PerformanceRepo.CountPerformanceSince(ctx, since)
	if err != nil {
		return nil, err
	}
	return &DashboardData{
		TotalMembers:    total,
		Attendance:      attendance,
		RecentPerfCount: recent,
	}, nil
}
