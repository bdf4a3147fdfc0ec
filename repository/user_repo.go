package repository

import (
	"context"

	"vinyasaclub/models"
)

// UserRepository is the credential store. Email lookups ignore case.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.AppUser) error
	GetUserByEmail(ctx context.Context, email string) (*models.AppUser, error)
	CountUsers(ctx context.Context) (int, error)
}
