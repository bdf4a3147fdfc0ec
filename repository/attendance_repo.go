package repository

import (
	"context"

	"vinyasaclub/models"
)

// AttendanceRepository lists are ordered by date, then member id.
type AttendanceRepository interface {
	ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error)
	// ListAttendanceBetween returns records with from <= date <= to.
	ListAttendanceBetween(ctx context.Context, from, to string) ([]models.Attendance, error)
	// ReplaceAttendanceForDate deletes every record on date, then stores
	// entries. Entries must carry distinct member ids. Entries naming an
	// unknown member are skipped. It returns the stored records.
	ReplaceAttendanceForDate(ctx context.Context, date string, entries []models.AttendanceEntry) ([]models.Attendance, error)
}
