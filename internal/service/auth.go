package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// RoleDefaulter computes the role a brand-new identity starts with.
type RoleDefaulter interface {
	FallbackRole(email string) string
}

type AuthService struct {
	repo  AuthUserRepository
	roles RoleDefaulter
}

func NewAuthService(repo AuthUserRepository, roles RoleDefaulter) *AuthService {
	return &AuthService{
		repo:  repo,
		roles: roles,
	}
}

// Signup creates the user record for a new identity. The record carries
// everything later pages rely on: the defaulted display name (local part of
// the email), the allow-list role, and the creation metadata.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if name == "" {
		name = emailLocalPart(email)
	}

	user := domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Password:       string(hash),
		DisplayName:    name,
		Role:           s.roles.FallbackRole(email),
		GrowLogs:       map[string]string{},
		JudgeNotes:     map[string]string{},
		SubmittedWeeks: []string{},
		JoinedAt:       time.Now().UTC(),
		Active:         true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}
