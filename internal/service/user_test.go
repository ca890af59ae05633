package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growoff/growoff-api/internal/domain"
)

type fakeUserRepo struct {
	fakeRoleRepo
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, user := range f.users {
		users = append(users, user)
	}

	return users, nil
}

func newUserService(users map[string]domain.User, legacy map[string]string) (*UserService, *fakeUserRepo) {
	repo := &fakeUserRepo{fakeRoleRepo{users: users, legacy: legacy}}
	resolver := NewRoleResolver(&repo.fakeRoleRepo, testContestConfig())

	return NewUserService(repo, resolver), repo
}

func TestUserService_SetRole(t *testing.T) {
	t.Run("overwrites the role", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"u1": {ID: "u1", Email: "grower@example.com", Role: domain.RoleContestant},
		}, nil)

		err := svc.SetRole(context.Background(), "u1", domain.RoleJudge)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleJudge, repo.users["u1"].Role)
	})

	t.Run("promoted role wins over the fallback on later resolution", func(t *testing.T) {
		users := map[string]domain.User{
			"u1": {ID: "u1", Email: "grower@example.com", Role: domain.RoleContestant},
		}
		svc, repo := newUserService(users, nil)
		resolver := NewRoleResolver(&repo.fakeRoleRepo, testContestConfig())

		require.NoError(t, svc.SetRole(context.Background(), "u1", domain.RoleJudge))

		role, err := resolver.Resolve(context.Background(), "u1")
		require.NoError(t, err)
		// The stored role is returned as-is; the allow-list fallback
		// (which would say contestant) is not consulted again.
		assert.Equal(t, domain.RoleJudge, role)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"u1": {ID: "u1", Role: domain.RoleContestant},
		}, nil)

		err := svc.SetRole(context.Background(), "u1", "superuser")

		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.Empty(t, repo.writes)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newUserService(map[string]domain.User{}, nil)

		err := svc.SetRole(context.Background(), "ghost", domain.RoleJudge)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_RepairRoles(t *testing.T) {
	svc, repo := newUserService(map[string]domain.User{
		"admin":  {ID: "admin", Email: "admin@demo.com"},
		"judge":  {ID: "judge", Email: "judge1@demo.com"},
		"grower": {ID: "grower", Email: "grower@example.com"},
		"legacy": {ID: "legacy", Email: "legacy@example.com"},
		"done":   {ID: "done", Email: "done@example.com", Role: domain.RoleContestant},
	}, map[string]string{
		"legacy": domain.RoleTech,
	})

	repaired, err := svc.RepairRoles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, repaired)
	assert.Equal(t, domain.RoleAdmin, repo.users["admin"].Role)
	assert.Equal(t, domain.RoleJudge, repo.users["judge"].Role)
	assert.Equal(t, domain.RoleContestant, repo.users["grower"].Role)
	assert.Equal(t, domain.RoleTech, repo.users["legacy"].Role)

	// Second run finds nothing left to repair.
	repaired, err = svc.RepairRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}

func TestUserService_GetUser(t *testing.T) {
	t.Run("stored role is returned as-is", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"u1": {ID: "u1", Email: "grower@example.com", Role: domain.RoleJudge},
		}, nil)

		user, err := svc.GetUser(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleJudge, user.Role)
		assert.Empty(t, repo.writes)
	})

	t.Run("legacy record without a role resolves on first request", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"legacy": {ID: "legacy", Email: "legacy@example.com"},
		}, map[string]string{
			"legacy": domain.RoleTech,
		})

		user, err := svc.GetUser(context.Background(), "legacy")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleTech, user.Role)
		require.Len(t, repo.writes, 1)
		assert.Equal(t, roleWrite{id: "legacy", role: domain.RoleTech}, repo.writes[0])
		assert.Equal(t, domain.RoleTech, repo.users["legacy"].Role)
	})

	t.Run("missing role falls back to the allow-list", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"u1": {ID: "u1", Email: "grower@example.com"},
		}, nil)

		user, err := svc.GetUser(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleContestant, user.Role)
		assert.Equal(t, domain.RoleContestant, repo.users["u1"].Role)
	})

	t.Run("resolution failure denies rather than defaults", func(t *testing.T) {
		svc, repo := newUserService(map[string]domain.User{
			"u1": {ID: "u1", Email: "grower@example.com"},
		}, nil)
		repo.writeErr = errors.New("firestore unavailable")

		_, err := svc.GetUser(context.Background(), "u1")

		require.Error(t, err)
		assert.Empty(t, repo.writes)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newUserService(map[string]domain.User{}, nil)

		_, err := svc.GetUser(context.Background(), "ghost")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
