package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldflix/internal/knn"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadUsers(t *testing.T) {
	path := writeCSV(t, "users.csv",
		"user_id,age,gender,Netflix,Hulu\n"+
			"1,30,F,Yes,No\n"+
			"2,41,M,1,0\n")

	users, platforms, err := LoadUsers(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Netflix", "Hulu"}, platforms)
	require.Len(t, users, 2)
	assert.Equal(t, User{UserID: 1, Age: 30, Gender: "F",
		Platforms: map[string]bool{"Netflix": true, "Hulu": false}}, users[0])
	assert.True(t, users[1].Platforms["Netflix"])
}

func TestLoadUsersBadAge(t *testing.T) {
	path := writeCSV(t, "users.csv",
		"user_id,age,gender\n1,treinta,F\n")

	_, _, err := LoadUsers(path)
	assert.Error(t, err)
}

func TestLoadUsersMissingColumn(t *testing.T) {
	path := writeCSV(t, "users.csv", "user_id,gender\n1,F\n")

	_, _, err := LoadUsers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestLoadRatings(t *testing.T) {
	path := writeCSV(t, "ratings.csv",
		"user_id,show_id,rating\n1,s10,4.5\n2,s11,3\n")

	ratings, err := LoadRatings(path)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, Rating{UserID: 1, ShowID: "s10", Rating: 4.5}, ratings[0])
}

func TestLoadTitles(t *testing.T) {
	path := writeCSV(t, "titles.csv",
		"show_id,title,genres\n"+
			"s10,Algo,\"['Dramas', 'International Movies']\"\n"+
			"s11,Nada,[]\n")

	titles, err := LoadTitles(path)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, []string{"Dramas", "International Movies"}, titles["s10"].Genres)
	assert.Empty(t, titles["s11"].Genres)
}

func TestParseGenreList(t *testing.T) {
	got, err := ParseGenreList(`["Kids' TV", 'Comedies']`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kids' TV", "Comedies"}, got)

	_, err = ParseGenreList("Dramas")
	assert.Error(t, err)

	_, err = ParseGenreList("['sin cerrar]")
	assert.Error(t, err)
}

func TestParseFlag(t *testing.T) {
	for _, raw := range []string{"Yes", "yes", "1", "true", "Si"} {
		v, err := ParseFlag(raw)
		require.NoError(t, err)
		assert.True(t, v, raw)
	}
	for _, raw := range []string{"No", "0", "false", ""} {
		v, err := ParseFlag(raw)
		require.NoError(t, err)
		assert.False(t, v, raw)
	}
	_, err := ParseFlag("quizás")
	assert.Error(t, err)
}

func TestLoadStoreEndToEnd(t *testing.T) {
	users := writeCSV(t, "users.csv", "user_id,age,gender,Netflix\n1,30,F,Yes\n")
	ratings := writeCSV(t, "ratings.csv", "user_id,show_id,rating\n1,s10,5\n1,s11,3\n")
	titles := writeCSV(t, "titles.csv", "show_id,title,genres\ns10,A,['Comedies']\ns11,B,['Dramas']\n")

	store, err := Load(Source{UsersPath: users, RatingsPath: ratings, TitlesPath: titles}, knn.CosineDistance)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Matrix.Items())
	assert.Equal(t, 1, store.Matrix.Users())
	assert.NotNil(t, store.Index)
}
