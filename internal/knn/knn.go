package knn

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"coldflix/internal/matrix"
)

// ErrUnknownItem indica que el ítem semilla nunca apareció en el log de
// interacciones, así que no tiene fila en la matriz.
var ErrUnknownItem = errors.New("knn: unknown item")

// Neighbor is one search hit: a show id and its distance from the seed.
type Neighbor struct {
	ShowID   string  `json:"show_id"`
	Distance float64 `json:"distance"`
}

// Index runs exact brute-force nearest-neighbour search over the item rows
// of a rating matrix. The matrix is read-only, so a single Index is safe to
// share across concurrent requests.
type Index struct {
	m       *matrix.Matrix
	dist    DistanceFunc
	workers int
}

// NewIndex crea un índice sobre la matriz con la métrica dada.
func NewIndex(m *matrix.Matrix, dist DistanceFunc) *Index {
	return &Index{
		m:       m,
		dist:    dist,
		workers: runtime.NumCPU(),
	}
}

// Search returns the k nearest neighbours of the seed show in ascending
// distance order, the seed itself excluded. Ties on distance break by row
// index so repeated calls return identical slices. When fewer than k other
// items exist every one of them is returned.
func (ix *Index) Search(showID string, k int) ([]Neighbor, error) {
	if k < 1 {
		return nil, fmt.Errorf("knn: k must be >= 1, got %d", k)
	}
	seed, ok := ix.m.RowOf(showID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, showID)
	}

	n := ix.m.Items()
	users := ix.m.Users()
	seedRow := ix.m.Row(seed)

	// distancia de la semilla contra todas las filas, por bloques
	dists := make([]float64, n)
	const block = 256

	jobs := make(chan [2]int, ix.workers)
	var wg sync.WaitGroup
	for w := 0; w < ix.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				for i := job[0]; i < job[1]; i++ {
					dists[i] = ix.dist(seedRow, ix.m.Row(i), users)
				}
			}
		}()
	}
	for i0 := 0; i0 < n; i0 += block {
		i1 := i0 + block
		if i1 > n {
			i1 = n
		}
		jobs <- [2]int{i0, i1}
	}
	close(jobs)
	wg.Wait()

	order := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i == seed {
			continue
		}
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		if dists[order[a]] == dists[order[b]] {
			return order[a] < order[b]
		}
		return dists[order[a]] < dists[order[b]]
	})

	if len(order) > k {
		order = order[:k]
	}
	out := make([]Neighbor, len(order))
	for idx, i := range order {
		out[idx] = Neighbor{ShowID: ix.m.ShowIDAt(i), Distance: dists[i]}
	}
	return out, nil
}
