package recommend

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// HistoryEntry es el documento que queda en Mongo por cada petición servida.
type HistoryEntry struct {
	Age             int                 `bson:"age"`
	Gender          string              `bson:"gender"`
	Platforms       map[string]bool     `bson:"platforms"`
	Genres          []string            `bson:"genres"`
	SkippedFilters  []string            `bson:"skippedFilters"`
	Recommendations map[string][]string `bson:"recommendations"`
	Metric          string              `bson:"metric"`
	K               int                 `bson:"k"`
	CreatedAt       time.Time           `bson:"createdAt"`
}

// Repository persiste el historial de recomendaciones servidas.
type Repository interface {
	SaveHistory(ctx context.Context, e *HistoryEntry) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository crea el repositorio de historial sobre la colección dada.
func NewMongoRepository(coll *mongo.Collection) Repository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) SaveHistory(ctx context.Context, e *HistoryEntry) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("guardando historial: %w", err)
	}
	return nil
}

func newHistoryEntry(req Request, res *Result, opts Options) *HistoryEntry {
	platforms := make(map[string]bool, len(req.Platforms))
	for _, f := range req.Platforms {
		platforms[f.Name] = f.Value
	}
	metric := opts.Metric
	if metric == "" {
		metric = "cosine"
	}
	return &HistoryEntry{
		Age:             req.Age,
		Gender:          req.Gender,
		Platforms:       platforms,
		Genres:          req.Genres,
		SkippedFilters:  res.SkippedFilters,
		Recommendations: res.Recommendations,
		Metric:          metric,
		K:               opts.K,
		CreatedAt:       time.Now().UTC(),
	}
}
