package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fungi-kb/apiserver/config"
	"github.com/fungi-kb/apiserver/internal/auth"
	"github.com/fungi-kb/apiserver/types"
)

func TestUserServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Add(ctx, "Ops", "ops@example.com", "secret123", types.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, types.RoleAdmin, user.Role)
	require.NotZero(t, user.ID)

	_, err = svc.Add(ctx, "Ops Again", "ops@example.com", "secret123", "")
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestUserServiceAdd_DefaultsAndValidatesRole(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Add(ctx, "Plain", "plain@example.com", "secret123", "")
	require.NoError(t, err)
	require.Equal(t, types.RoleUser, user.Role)

	_, err = svc.Add(ctx, "Bad", "bad@example.com", "secret123", "superuser")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "role", validationErr.Field)
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Add(ctx, "Mary", "mary@example.com", "secret123", "")
	require.NoError(t, err)
	originalHash := repo.users[created.ID].PasswordHash

	updated, err := svc.Update(ctx, types.User{
		ID:    created.ID,
		Name:  "Mary Renamed",
		Email: "mary@example.com",
		Role:  types.RoleAdmin,
	}, "")
	require.NoError(t, err)
	require.Equal(t, "Mary Renamed", updated.Name)
	require.Equal(t, types.RoleAdmin, updated.Role)
	require.Equal(t, originalHash, repo.users[created.ID].PasswordHash)

	_, err = svc.Update(ctx, types.User{
		ID:    created.ID,
		Name:  "Mary Renamed",
		Email: "mary@example.com",
	}, "brand-new-password")
	require.NoError(t, err)
	require.NotEqual(t, originalHash, repo.users[created.ID].PasswordHash)
	require.True(t, auth.VerifyPassword("brand-new-password", repo.users[created.ID].PasswordHash))
}

func TestUserServiceUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Update(ctx, types.User{ID: 404, Name: "Ghost", Email: "ghost@example.com"}, "")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	created, err := svc.Add(ctx, "Mary", "mary@example.com", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	adminCfg := config.AdminConfig{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "changeme",
	}

	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))

	admin, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, types.RoleAdmin, admin.Role)
	require.True(t, auth.VerifyPassword("changeme", admin.PasswordHash))

	// Second call is a no-op, not a conflict.
	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
