package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHasPermission(t *testing.T) {
	role := &Role{Name: "editor", Permissions: []string{"news:write", "news:publish"}}

	assert.True(t, role.HasPermission("news:write"))
	assert.False(t, role.HasPermission("roles:manage"))

	var none *Role
	assert.False(t, none.HasPermission("news:write"))
}

func TestNormalizePermissions(t *testing.T) {
	got := NormalizePermissions([]string{" news:write ", "", "news:publish", "news:write", "  "})
	assert.Equal(t, []string{"news:write", "news:publish"}, got)

	assert.Empty(t, NormalizePermissions(nil))
	assert.Empty(t, NormalizePermissions([]string{"", "   "}))
}
