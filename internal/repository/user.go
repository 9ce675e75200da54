package repository

import (
	"context"
	"errors"

	"user-service/internal/domain"
)

var (
	// ErrNotFound is returned when no user matches the given identifier or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write would leave two users sharing an email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
// Implementations enforce email uniqueness at the storage layer so that
// concurrent writes with the same email cannot both succeed.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
