package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// UserService implements business logic for the staff directory.
// Accounts are provisioned upstream; this service only creates directory
// records and lists them for reply-sender and assignee pickers.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// Create validates and persists a directory record.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("service.UserService.Create: email is required: %w", domain.ErrValidation)
	}
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleStaff {
		return domain.User{}, fmt.Errorf("service.UserService.Create: unknown role %q: %w", user.Role, domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, fmt.Errorf("service.UserService.Create: email %q already registered: %w", user.Email, domain.ErrValidation)
		}
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// ListByRoles returns directory records holding any of the given roles.
// An empty filter defaults to both staff roles, which is what the assignee
// picker wants.
func (s *UserService) ListByRoles(ctx context.Context, roles []string) ([]domain.User, error) {
	if len(roles) == 0 {
		roles = []string{domain.RoleAdmin, domain.RoleStaff}
	}

	users, err := s.repo.ListByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.ListByRoles: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
