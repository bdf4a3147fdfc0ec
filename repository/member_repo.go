package repository

import (
	"context"

	"vinyasaclub/models"
)

type MemberRepository interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	// GetMember returns nil, nil when the member does not exist.
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// CreateMember assigns ID, Seq and VIN. Seq comes from a counter that
	// never goes backwards, so a VIN is never handed out twice.
	CreateMember(ctx context.Context, member *models.Member) error
	// DeleteMember removes the member with its attendance and performance
	// records, or returns ErrNotFound.
	DeleteMember(ctx context.Context, id string) error
	CountMembers(ctx context.Context) (int, error)
}
