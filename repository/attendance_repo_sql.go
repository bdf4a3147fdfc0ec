package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vinyasaclub/models"
)

type SQLAttendanceRepo struct {
	DB *sql.DB
}

func NewSQLAttendanceRepo(db *sql.DB) *SQLAttendanceRepo {
	return &SQLAttendanceRepo{DB: db}
}

func (r *SQLAttendanceRepo) ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	return r.ListAttendanceBetween(ctx, date, date)
}

func (r *SQLAttendanceRepo) ListAttendanceBetween(ctx context.Context, from, to string) ([]models.Attendance, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, member_id, date, status
		FROM attendance
		WHERE date >= $1 AND date <= $2
		ORDER BY date, member_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	list := []models.Attendance{}
	for rows.Next() {
		var a models.Attendance
		var status string
		if err := rows.Scan(&a.ID, &a.MemberID, &a.Date, &status); err != nil {
			return nil, err
		}
		a.Status = models.AttendanceStatus(status)
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *SQLAttendanceRepo) ReplaceAttendanceForDate(ctx context.Context, date string, entries []models.AttendanceEntry) ([]models.Attendance, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE date = $1`, date); err != nil {
		return nil, fmt.Errorf("clear attendance: %w", err)
	}

	// Upserting keeps a concurrent bulk write for the same date from
	// failing on the (member_id, date) constraint; the later write wins.
	stored := []models.Attendance{}
	pos := map[string]int{}
	for _, e := range entries {
		a := models.Attendance{
			ID:       uuid.NewString(),
			MemberID: e.MemberID,
			Date:     date,
			Status:   e.Status,
		}
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO attendance (id, member_id, date, status)
			SELECT CAST($1 AS TEXT), CAST($2 AS TEXT), CAST($3 AS TEXT), CAST($4 AS TEXT)
			WHERE EXISTS (SELECT 1 FROM members WHERE id = $5)
			ON CONFLICT (member_id, date) DO UPDATE SET status = excluded.status
			RETURNING id
		`, a.ID, a.MemberID, a.Date, string(a.Status), a.MemberID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("upsert attendance: %w", err)
		}
		a.ID = id

		if i, seen := pos[a.MemberID]; seen {
			stored[i] = a
			continue
		}
		pos[a.MemberID] = len(stored)
		stored = append(stored, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	sortAttendance(stored)
	return stored, nil
}
