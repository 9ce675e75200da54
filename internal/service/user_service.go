package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"user-service/internal/auth"
	"user-service/internal/domain"
	"user-service/internal/repository"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot probe which emails are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput carries the fields accepted when creating a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Role     string
}

// UpdateInput replaces every mutable field of a user. Password is optional;
// when empty the stored hash is kept.
type UpdateInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Role     string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, bcryptCost int) UserService {
	return &userService{users: users, bcryptCost: bcryptCost}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Age:          in.Age,
		Role:         role,
	}

	// the store enforces email uniqueness; concurrent registrations with the
	// same email race there, and exactly one wins
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = current.Role
	}

	hash := current.PasswordHash
	if in.Password != "" {
		hash, err = auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
	}

	user := &domain.User{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Age:          in.Age,
		Role:         role,
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
