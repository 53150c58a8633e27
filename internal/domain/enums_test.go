package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCampus(t *testing.T) {
	campus, err := ParseCampus("main")
	require.NoError(t, err)
	assert.Equal(t, CampusMain, campus)

	campus, err = ParseCampus("  NAKURU ")
	require.NoError(t, err)
	assert.Equal(t, CampusNakuru, campus)

	_, err = ParseCampus("moon")
	require.Error(t, err)
	assert.EqualError(t, err, `invalid campus value "moon"`)
}

func TestParseLeaderCategory(t *testing.T) {
	category, err := ParseLeaderCategory("school_reps")
	require.NoError(t, err)
	assert.Equal(t, LeaderCategorySchoolReps, category)

	_, err = ParseLeaderCategory("janitors")
	require.Error(t, err)
	assert.EqualError(t, err, `invalid category value "janitors"`)
}

func TestParseGalleryCategory(t *testing.T) {
	category, err := ParseGalleryCategory("Culture")
	require.NoError(t, err)
	assert.Equal(t, GalleryCategoryCulture, category)

	_, err = ParseGalleryCategory("weather")
	require.Error(t, err)
}

func TestEnumLabel(t *testing.T) {
	assert.Equal(t, "School Reps", EnumLabel("SCHOOL_REPS"))
	assert.Equal(t, "Executive", EnumLabel("EXECUTIVE"))
	assert.Equal(t, "Main", EnumLabel(string(CampusMain)))
	assert.Equal(t, "", EnumLabel(""))
}

func TestUserFullName(t *testing.T) {
	first := "Jane"
	last := "Wanjiku"

	assert.Equal(t, "Jane Wanjiku", (&User{FirstName: &first, LastName: &last}).FullName())
	assert.Equal(t, "Jane", (&User{FirstName: &first}).FullName())
	assert.Equal(t, "Wanjiku", (&User{LastName: &last}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}

func TestAdminPrincipalPermissions(t *testing.T) {
	withRole := &AdminPrincipal{Role: &Role{Permissions: []string{"news:write"}}}
	assert.Equal(t, []string{"news:write"}, withRole.Permissions())

	withoutRole := &AdminPrincipal{}
	assert.Equal(t, []string{}, withoutRole.Permissions())

	var none *AdminPrincipal
	assert.Equal(t, []string{}, none.Permissions())
}
