package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/growoff/growoff-api/internal/config"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindLegacyRole(ctx context.Context, id string) (string, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// RoleResolver maps an identity to its single role. The user document is
// the canonical store; the legacy roles collection is consulted once and
// migrated forward, and identities with no role anywhere get an allow-list
// fallback persisted with write-if-absent semantics. A resolution failure
// means unauthorized - a role is never defaulted without a durable write.
type RoleResolver struct {
	repo RoleRepository
	conf *config.ContestConfig
}

func NewRoleResolver(repo RoleRepository, conf *config.ContestConfig) *RoleResolver {
	return &RoleResolver{
		repo: repo,
		conf: conf,
	}
}

func (r *RoleResolver) Resolve(ctx context.Context, id string) (string, error) {
	user, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("r.repo.FindByID -> %w", err)
	}
	if user.Role != "" {
		return user.Role, nil
	}

	role, err := r.repo.FindLegacyRole(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrRoleNotFound) {
		return "", fmt.Errorf("r.repo.FindLegacyRole -> %w", err)
	}
	if role == "" {
		role = r.FallbackRole(user.Email)
	}

	if err = r.repo.UpdateRole(ctx, id, role); err != nil {
		return "", fmt.Errorf("r.repo.UpdateRole -> %w", err)
	}

	return role, nil
}

func (r *RoleResolver) FallbackRole(email string) string {
	for _, admin := range r.conf.AdminEmails {
		if email == admin {
			return domain.RoleAdmin
		}
	}
	for _, judge := range r.conf.JudgeEmails {
		if email == judge {
			return domain.RoleJudge
		}
	}

	return domain.RoleContestant
}
