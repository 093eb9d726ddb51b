package repositories

import (
	"context"

	"productos/internal/models"
)

// UserRepository defines the interface for user data access.
// Lookups of an absent user return *errs.NotFoundError.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
