package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

func optionFixture() []*models.OptionItem {
	ptr := func(s string) *string { return &s }
	return []*models.OptionItem{
		{ID: "campus-cyber", Kind: models.OptionCampus, Label: "Cyberjaya", SortOrder: 1, IsActive: true},
		{ID: "campus-melaka", Kind: models.OptionCampus, Label: "Melaka", SortOrder: 2, IsActive: true},
		{ID: "fac-fci", Kind: models.OptionFaculty, ParentID: ptr("campus-cyber"), Label: "Faculty of Computing", SortOrder: 1, IsActive: true},
		{ID: "fac-fom", Kind: models.OptionFaculty, ParentID: ptr("campus-melaka"), Label: "Faculty of Management", SortOrder: 1, IsActive: true},
		{ID: "course-cs", Kind: models.OptionCourse, ParentID: ptr("fac-fci"), Label: "Computer Science", SortOrder: 1, IsActive: true},
		{ID: "course-acc", Kind: models.OptionCourse, ParentID: ptr("fac-fom"), Label: "Accounting", SortOrder: 1, IsActive: true},
		{ID: "prov-zakat", Kind: models.OptionSupportProvider, Label: "Zakat Board", SortOrder: 1, IsActive: true},
		{ID: "prov-ptptn", Kind: models.OptionSupportProvider, Label: "PTPTN", SortOrder: 2, IsActive: true},
	}
}

func TestBuildOptionSetTreeShape(t *testing.T) {
	set := BuildOptionSet(optionFixture())

	require.Len(t, set.Campuses, 2)
	assert.Equal(t, "Cyberjaya", set.Campuses[0].Label)

	require.Len(t, set.Campuses[0].Children, 1)
	faculty := set.Campuses[0].Children[0]
	assert.Equal(t, "Faculty of Computing", faculty.Label)
	require.Len(t, faculty.Children, 1)
	assert.Equal(t, "Computer Science", faculty.Children[0].Label)

	require.Len(t, set.Providers, 2)
	assert.Equal(t, "Zakat Board", set.Providers[0].Label)
}

func TestBuildOptionSetIgnoresOrphans(t *testing.T) {
	items := optionFixture()
	items = append(items, &models.OptionItem{
		ID: "fac-lost", Kind: models.OptionFaculty, Label: "Orphan Faculty", IsActive: true,
	})
	set := BuildOptionSet(items)
	for _, campus := range set.Campuses {
		for _, faculty := range campus.Children {
			assert.NotEqual(t, "fac-lost", faculty.ID)
		}
	}
}

func TestValidateCoursePath(t *testing.T) {
	set := BuildOptionSet(optionFixture())

	assert.Nil(t, set.ValidateCoursePath("campus-cyber", "fac-fci", "course-cs"))

	// Every node exists and is active, but the chain does not hold:
	// course-acc belongs to fac-fom, not fac-fci.
	err := set.ValidateCoursePath("campus-cyber", "fac-fci", "course-acc")
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidCourse, err.Code)

	// Faculty under the wrong campus.
	err = set.ValidateCoursePath("campus-cyber", "fac-fom", "course-acc")
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidPath, err.Code)

	// Unknown or wrong-kind nodes.
	err = set.ValidateCoursePath("missing", "fac-fci", "course-cs")
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidPath, err.Code)

	err = set.ValidateCoursePath("campus-cyber", "fac-fci", "fac-fci")
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidCourse, err.Code)
}

func TestValidateSupportProviders(t *testing.T) {
	set := BuildOptionSet(optionFixture())

	assert.Nil(t, set.ValidateSupportProviders([]string{"prov-zakat", "prov-ptptn"}))

	err := set.ValidateSupportProviders([]string{"prov-zakat", "missing"})
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidSupportProvider, err.Code)

	// A course id is not a provider.
	err = set.ValidateSupportProviders([]string{"course-cs"})
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidSupportProvider, err.Code)
}
