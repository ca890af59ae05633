package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository"
)

var ErrInvalidRole = errors.New("invalid role")

type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindLegacyRole(ctx context.Context, id string) (string, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// UserRoleResolver turns an identity without a stored role into one with
// a durable role, and computes the allow-list default for new signups.
type UserRoleResolver interface {
	RoleDefaulter
	Resolve(ctx context.Context, id string) (string, error)
}

type UserService struct {
	repo  UserRepository
	roles UserRoleResolver
}

func NewUserService(repo UserRepository, roles UserRoleResolver) *UserService {
	return &UserService{
		repo:  repo,
		roles: roles,
	}
}

// GetUser loads the record behind an authenticated identity. Records
// predating the role field get their role resolved (legacy record, then
// allow-list) and persisted here, on their first authenticated request;
// if resolution fails the request is denied rather than given a default.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Role == "" {
		role, err := s.roles.Resolve(ctx, id)
		if err != nil {
			return domain.User{}, fmt.Errorf("s.roles.Resolve -> %w", err)
		}
		user.Role = role
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// SetRole overwrites a user's role. Only the role field of the canonical
// record is written; nothing writes the legacy roles collection.
func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	if !domain.IsValidRole(role) {
		return ErrInvalidRole
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return nil
}

// RepairRoles assigns a role to every user that lacks one, preferring a
// legacy role record over the allow-list fallback. Returns how many
// records were written.
func (s *UserService) RepairRoles(ctx context.Context) (int, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	repaired := 0
	for _, user := range users {
		if user.Role != "" {
			continue
		}

		role, err := s.repo.FindLegacyRole(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrRoleNotFound) {
			return repaired, fmt.Errorf("s.repo.FindLegacyRole -> %w", err)
		}
		if role == "" {
			role = s.roles.FallbackRole(user.Email)
		}

		if err = s.repo.UpdateRole(ctx, user.ID, role); err != nil {
			return repaired, fmt.Errorf("s.repo.UpdateRole -> %w", err)
		}
		repaired++
	}

	return repaired, nil
}
