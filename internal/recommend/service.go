package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"coldflix/internal/cache"
	"coldflix/internal/cohort"
	"coldflix/internal/dataset"
	"coldflix/internal/genres"
	"coldflix/internal/knn"
)

// Engine es la búsqueda de vecinos que usa el orquestador. knn.Index la
// implementa; los tests la reemplazan por un stub.
type Engine interface {
	Search(showID string, k int) ([]knn.Neighbor, error)
}

// Options ajusta los parámetros del pipeline; los ceros caen a defaults.
type Options struct {
	K        int
	MaxRecs  int
	TopSeeds int
	Metric   string
	CacheTTL time.Duration
}

type genreService struct {
	store    *dataset.Store
	engine   Engine
	selector *cohort.Selector
	history  Repository    // opcional
	cache    *cache.Client // opcional
	opts     Options
}

// NewService construye el orquestador sobre el estado compartido.
func NewService(store *dataset.Store, engine Engine, selector *cohort.Selector, history Repository, cacheClient *cache.Client, opts Options) Service {
	if opts.K <= 0 {
		opts.K = DefaultK
	}
	if opts.MaxRecs <= 0 {
		opts.MaxRecs = DefaultMaxRecs
	}
	if opts.TopSeeds <= 0 {
		opts.TopSeeds = DefaultTopSeeds
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &genreService{
		store:    store,
		engine:   engine,
		selector: selector,
		history:  history,
		cache:    cacheClient,
		opts:     opts,
	}
}

// Recommend corre el pipeline completo: cohorte demográfica, semilla por
// género y expansión por vecinos. Todo el cómputo es en memoria sobre
// estado inmutable, así que la misma petición siempre produce la misma
// respuesta (por eso la caché es segura).
func (s *genreService) Recommend(ctx context.Context, req Request) (*Result, error) {
	if len(req.Genres) == 0 {
		req.Genres = DefaultGenres
	}

	key := cacheKey(req)
	if s.cache != nil {
		var cached Result
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	sel := s.selector.Select(s.store.Users, req.Age, req.Gender, req.Platforms)
	if sel.Empty() {
		return &Result{Status: StatusNoMatchingUsers, SkippedFilters: sel.SkippedFilters}, nil
	}

	recs := make(map[string][]string)
	for _, genre := range req.Genres {
		titles, err := s.recommendGenre(genre, sel.UserIDs)
		if err != nil {
			return nil, err
		}
		if len(titles) > 0 {
			recs[genre] = titles
		}
	}

	result := &Result{
		Status:          StatusOK,
		Recommendations: recs,
		SkippedFilters:  sel.SkippedFilters,
	}
	if len(recs) == 0 {
		result.Status = StatusNoRecommendations
		result.Recommendations = nil
	}

	if s.history != nil && result.Status == StatusOK {
		entry := newHistoryEntry(req, result, s.opts)
		if err := s.history.SaveHistory(ctx, entry); err != nil {
			log.Printf("[RECS] No se pudo guardar historial en Mongo: %v", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result, s.opts.CacheTTL); err != nil {
			log.Printf("[RECS] No se pudo cachear la respuesta: %v", err)
		}
	}

	return result, nil
}

// recommendGenre resuelve un género: restringe catálogo y ratings, saca la
// semilla mejor puntuada por la cohorte y filtra sus vecinos al género.
func (s *genreService) recommendGenre(genre string, cohortIDs map[int]struct{}) ([]string, error) {
	resolved := genres.Resolve(genre)

	genreItems := make(map[string]struct{})
	for id, t := range s.store.Titles {
		if genres.Matches(t.Genres, resolved) {
			genreItems[id] = struct{}{}
		}
	}
	if len(genreItems) == 0 {
		return nil, nil
	}

	// media por ítem entre los ratings de la cohorte sobre el género
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range s.store.Ratings {
		if _, ok := cohortIDs[r.UserID]; !ok {
			continue
		}
		if _, ok := genreItems[r.ShowID]; !ok {
			continue
		}
		sums[r.ShowID] += r.Rating
		counts[r.ShowID]++
	}
	if len(counts) == 0 {
		return nil, nil
	}

	type rated struct {
		showID string
		mean   float64
	}
	top := make([]rated, 0, len(counts))
	for id, n := range counts {
		top = append(top, rated{showID: id, mean: sums[id] / float64(n)})
	}
	// empates por show_id ascendente para que el resultado sea reproducible
	sort.Slice(top, func(a, b int) bool {
		if top[a].mean == top[b].mean {
			return top[a].showID < top[b].showID
		}
		return top[a].mean > top[b].mean
	})
	if len(top) > s.opts.TopSeeds {
		top = top[:s.opts.TopSeeds]
	}

	seed := top[0].showID
	nbrs, err := s.engine.Search(seed, s.opts.K)
	if err != nil {
		if errors.Is(err, knn.ErrUnknownItem) {
			// no debería pasar (la semilla salió del log), pero un género
			// roto no tumba la petición entera
			log.Printf("[RECS] Semilla %s sin fila en la matriz, se omite %s", seed, genre)
			return nil, nil
		}
		return nil, err
	}

	out := make([]string, 0, s.opts.MaxRecs)
	for _, nb := range nbrs {
		t, ok := s.store.Titles[nb.ShowID]
		if !ok || !genres.Matches(t.Genres, resolved) {
			continue
		}
		out = append(out, t.Title)
		if len(out) == s.opts.MaxRecs {
			break
		}
	}
	return out, nil
}

// cacheKey serializa la petición de forma determinista.
func cacheKey(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "recs:%d:%s", req.Age, req.Gender)
	for _, f := range req.Platforms {
		fmt.Fprintf(&b, ":%s=%t", f.Name, f.Value)
	}
	b.WriteString(":g")
	for _, g := range req.Genres {
		b.WriteString(":")
		b.WriteString(g)
	}
	return b.String()
}
