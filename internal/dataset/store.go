package dataset

import (
	"fmt"

	"coldflix/internal/knn"
	"coldflix/internal/matrix"
)

// Source agrupa las rutas de los tres CSV de entrada.
type Source struct {
	UsersPath   string
	RatingsPath string
	TitlesPath  string
}

// Store is the shared read-only state of the process: the loaded tables,
// the interaction matrix and the search index built over it. It is
// constructed once at startup and never mutated, so request handlers can
// read it concurrently without locking.
type Store struct {
	Users        []User
	PlatformCols []string
	Ratings      []Rating
	Titles       map[string]Title
	Matrix       *matrix.Matrix
	Index        *knn.Index
}

// Load carga las tres tablas, construye la matriz item×user y el índice de
// vecinos. Cualquier dato malformado aborta el arranque del proceso.
func Load(src Source, metric knn.DistanceFunc) (*Store, error) {
	users, platformCols, err := LoadUsers(src.UsersPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	ratings, err := LoadRatings(src.RatingsPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	titles, err := LoadTitles(src.TitlesPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	log := make([]matrix.Interaction, len(ratings))
	for i, r := range ratings {
		log[i] = matrix.Interaction{UserID: r.UserID, ShowID: r.ShowID, Value: r.Rating}
	}
	m := matrix.Build(log)

	return &Store{
		Users:        users,
		PlatformCols: platformCols,
		Ratings:      ratings,
		Titles:       titles,
		Matrix:       m,
		Index:        knn.NewIndex(m, metric),
	}, nil
}
