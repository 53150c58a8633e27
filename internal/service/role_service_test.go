package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoleService() (*RoleService, *memRoleRepo) {
	repo := newMemRoleRepo()
	return NewRoleService(repo), repo
}

func TestRoleCreate(t *testing.T) {
	svc, _ := newTestRoleService()

	role, err := svc.Create(context.Background(), CreateRoleInput{
		Name:        "  editor  ",
		Description: ptr("Writes and publishes news"),
		Permissions: []string{" news:write ", "news:write", "", "news:publish"},
	})
	require.NoError(t, err)

	assert.Equal(t, "editor", role.Name)
	assert.Equal(t, []string{"news:write", "news:publish"}, role.Permissions)
}

func TestRoleCreateValidation(t *testing.T) {
	svc, _ := newTestRoleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoleInput{Name: "   "})
	domainErr := requireDomainError(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "role name is required", domainErr.Message)

	_, err = svc.Create(ctx, CreateRoleInput{Name: "editor"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRoleInput{Name: "editor"})
	domainErr = requireDomainError(t, err, "CONFLICT")
	assert.Equal(t, "role name already exists", domainErr.Message)
}

func TestRoleUpdate(t *testing.T) {
	svc, _ := newTestRoleService()
	ctx := context.Background()

	role, err := svc.Create(ctx, CreateRoleInput{Name: "editor", Permissions: []string{"news:write"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRoleInput{Name: "moderator"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, role.ID, UpdateRoleInput{
		Permissions: &[]string{"news:write", "news:publish", "news:write"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"news:write", "news:publish"}, updated.Permissions)

	// Renaming onto another role's name conflicts; keeping the own name
	// does not.
	_, err = svc.Update(ctx, role.ID, UpdateRoleInput{Name: ptr("moderator")})
	requireDomainError(t, err, "CONFLICT")

	same, err := svc.Update(ctx, role.ID, UpdateRoleInput{Name: ptr("editor")})
	require.NoError(t, err)
	assert.Equal(t, "editor", same.Name)

	_, err = svc.Update(ctx, 999, UpdateRoleInput{Name: ptr("ghost")})
	requireDomainError(t, err, "NOT_FOUND")
}

func TestRoleListAndDelete(t *testing.T) {
	svc, _ := newTestRoleService()
	ctx := context.Background()

	for _, name := range []string{"moderator", "editor"} {
		_, err := svc.Create(ctx, CreateRoleInput{Name: name})
		require.NoError(t, err)
	}

	roles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "editor", roles[0].Name)
	assert.Equal(t, "moderator", roles[1].Name)

	require.NoError(t, svc.Delete(ctx, roles[0].ID))
	_, err = svc.Get(ctx, roles[0].ID)
	requireDomainError(t, err, "NOT_FOUND")

	err = svc.Delete(ctx, roles[0].ID)
	requireDomainError(t, err, "NOT_FOUND")
}
