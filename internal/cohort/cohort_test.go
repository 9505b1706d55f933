package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldflix/internal/dataset"
)

func user(id, age int, gender string, netflix bool) dataset.User {
	return dataset.User{
		UserID:    id,
		Age:       age,
		Gender:    gender,
		Platforms: map[string]bool{"Netflix": netflix, "Hulu": false},
	}
}

func TestSelectAgeWindowAndGender(t *testing.T) {
	users := []dataset.User{
		user(1, 25, "F", true),
		user(2, 35, "F", true),
		user(3, 30, "F", false),
		user(4, 24, "F", true),  // fuera de rango
		user(5, 36, "F", true),  // fuera de rango
		user(6, 30, "M", true),  // otro género
	}

	s := NewSelector(5, 3)
	res := s.Select(users, 30, "F", nil)

	require.Len(t, res.UserIDs, 3)
	for _, id := range []int{1, 2, 3} {
		assert.Contains(t, res.UserIDs, id)
	}
	assert.Empty(t, res.SkippedFilters)
}

func TestSelectCommitsFilterAboveThreshold(t *testing.T) {
	users := []dataset.User{
		user(1, 30, "F", true),
		user(2, 30, "F", true),
		user(3, 30, "F", true),
		user(4, 30, "F", false),
	}

	s := NewSelector(5, 3)
	res := s.Select(users, 30, "F", []PlatformFilter{{Name: "Netflix", Value: true}})

	assert.Len(t, res.UserIDs, 3)
	assert.NotContains(t, res.UserIDs, 4)
	assert.Empty(t, res.SkippedFilters)
}

func TestSelectSkipsFilterBelowThreshold(t *testing.T) {
	users := []dataset.User{
		user(1, 30, "F", true),
		user(2, 30, "F", true),
		user(3, 30, "F", false),
		user(4, 30, "F", false),
	}

	s := NewSelector(5, 3)
	res := s.Select(users, 30, "F", []PlatformFilter{{Name: "Netflix", Value: true}})

	// solo 2 sobrevivirían, así que el filtro se descarta y la cohorte queda intacta
	assert.Len(t, res.UserIDs, 4)
	assert.Equal(t, []string{"Netflix"}, res.SkippedFilters)
}

func TestSelectFiltersAreCumulative(t *testing.T) {
	users := []dataset.User{
		{UserID: 1, Age: 30, Gender: "F", Platforms: map[string]bool{"Netflix": true, "Hulu": true}},
		{UserID: 2, Age: 30, Gender: "F", Platforms: map[string]bool{"Netflix": true, "Hulu": true}},
		{UserID: 3, Age: 30, Gender: "F", Platforms: map[string]bool{"Netflix": true, "Hulu": true}},
		{UserID: 4, Age: 30, Gender: "F", Platforms: map[string]bool{"Netflix": true, "Hulu": false}},
		{UserID: 5, Age: 30, Gender: "F", Platforms: map[string]bool{"Netflix": false, "Hulu": true}},
	}

	s := NewSelector(5, 3)
	res := s.Select(users, 30, "F", []PlatformFilter{
		{Name: "Netflix", Value: true},
		{Name: "Hulu", Value: true},
	})

	// Netflix deja 4; Hulu sobre esos 4 deja 3, ambos se aplican
	assert.Len(t, res.UserIDs, 3)
	assert.Empty(t, res.SkippedFilters)
}

func TestSelectMonotonicStrictness(t *testing.T) {
	users := []dataset.User{
		user(1, 30, "F", true), user(2, 30, "F", true), user(3, 30, "F", true),
		user(4, 30, "F", false), user(5, 30, "F", false), user(6, 30, "F", false),
	}

	s := NewSelector(5, 3)
	base := s.Select(users, 30, "F", nil)
	withFilter := s.Select(users, 30, "F", []PlatformFilter{{Name: "Netflix", Value: true}})

	assert.LessOrEqual(t, len(withFilter.UserIDs), len(base.UserIDs))
}

func TestSelectEmptyCohort(t *testing.T) {
	users := []dataset.User{user(1, 60, "M", true)}

	s := NewSelector(5, 3)
	res := s.Select(users, 30, "F", []PlatformFilter{{Name: "Netflix", Value: true}})

	assert.True(t, res.Empty())
	// el filtro también se reporta: dejó la cohorte (vacía) por debajo del mínimo
	assert.Equal(t, []string{"Netflix"}, res.SkippedFilters)
}
