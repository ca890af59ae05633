package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.User
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func newAuthService() (*AuthService, *fakeAuthRepo) {
	repo := &fakeAuthRepo{byEmail: map[string]domain.User{}}
	resolver := NewRoleResolver(&fakeRoleRepo{}, testContestConfig())

	return NewAuthService(repo, resolver), repo
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("creates the record with first-login defaults", func(t *testing.T) {
		svc, repo := newAuthService()

		user, err := svc.Signup(context.Background(), "grower@example.com", "passw0rd12", "")

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "grower", user.DisplayName)
		assert.Equal(t, domain.RoleContestant, user.Role)
		assert.True(t, user.Active)
		assert.False(t, user.JoinedAt.IsZero())
		assert.NotNil(t, user.GrowLogs)
		assert.Empty(t, user.SubmittedWeeks)

		stored := repo.byEmail["grower@example.com"]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("passw0rd12")))
	})

	t.Run("allow-listed addresses get their role", func(t *testing.T) {
		svc, _ := newAuthService()

		admin, err := svc.Signup(context.Background(), "admin@demo.com", "passw0rd12", "The Admin")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, admin.Role)
		assert.Equal(t, "The Admin", admin.DisplayName)

		judge, err := svc.Signup(context.Background(), "judge1@demo.com", "passw0rd12", "")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleJudge, judge.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthService()

		_, err := svc.Signup(context.Background(), "grower@example.com", "passw0rd12", "")
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), "grower@example.com", "passw0rd12", "")
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.Signup(context.Background(), "grower@example.com", "passw0rd12", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "grower@example.com", "passw0rd12")

		require.NoError(t, err)
		assert.Equal(t, "grower@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "grower@example.com", "wrong-pass1")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "passw0rd12")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
