package repositories

import (
	"context"
	"errors"

	"academy/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for admin account data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
