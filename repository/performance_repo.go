package repository

import (
	"context"
	"time"

	"vinyasaclub/models"
)

// PerformanceRepository is append-only. Lists are ordered by creation time.
type PerformanceRepository interface {
	ListPerformance(ctx context.Context) ([]models.Performance, error)
	CreatePerformance(ctx context.Context, perf *models.Performance) error
	// CountPerformanceSince counts records created strictly after t.
	CountPerformanceSince(ctx context.Context, t time.Time) (int, error)
}
