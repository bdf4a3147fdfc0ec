package repository

import (
	"context"

	"vinyasaclub/models"
)

// ReportRepository provides the data behind printed attendance sheets.
type ReportRepository struct {
	MemberRepo     MemberRepository
	AttendanceRepo AttendanceRepository
}

func NewReportRepository(members MemberRepository, attendance AttendanceRepository) *ReportRepository {
	return &ReportRepository{
		MemberRepo:     members,
		AttendanceRepo: attendance,
	}
}

// GetAttendanceSheet returns the full roster and each member's status on
// date, keyed by member id. Members without a record are absent from the map.
func (r *ReportRepository) GetAttendanceSheet(ctx context.Context, date string) ([]models.Member, map[string]models.AttendanceStatus, error) {
	members, err := r.MemberRepo.ListMembers(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err := r.AttendanceRepo.ListAttendanceByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	statuses := make(map[string]models.AttendanceStatus, len(records))
	for _, a := range records {
		statuses[a.MemberID] = a.Status
	}
	return members, statuses, nil
}
