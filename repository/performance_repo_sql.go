package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vinyasaclub/models"
)

type SQLPerformanceRepo struct {
	DB *sql.DB
}

func NewSQLPerformanceRepo(db *sql.DB) *SQLPerformanceRepo {
	return &SQLPerformanceRepo{DB: db}
}

func (r *SQLPerformanceRepo) ListPerformance(ctx context.Context) ([]models.Performance, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, member_id, category, score, rating, created_at
		FROM performance
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}
	defer rows.Close()

	list := []models.Performance{}
	for rows.Next() {
		var p models.Performance
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Category, &p.Score, &p.Rating, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *SQLPerformanceRepo) CreatePerformance(ctx context.Context, perf *models.Performance) error {
	perf.ID = uuid.NewString()
	if perf.CreatedAt.IsZero() {
		perf.CreatedAt = time.Now()
	}
	// Microseconds match postgres precision, and UTC keeps sqlite's text
	// timestamps comparable.
	perf.CreatedAt = perf.CreatedAt.UTC().Truncate(time.Microsecond)

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO performance (id, member_id, category, score, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, perf.ID, perf.MemberID, perf.Category, perf.Score, perf.Rating, perf.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert performance: %w", err)
	}
	return nil
}

func (r *SQLPerformanceRepo) CountPerformanceSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM performance WHERE created_at > $1
	`, t.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count performance: %w", err)
	}
	return n, nil
}
