package knn

import (
	"fmt"
	"math"

	"coldflix/internal/matrix"
)

// DistanceFunc computes a distance in [0,2] between two item rows.
// n is the number of user columns in the matrix (pearson needs it).
type DistanceFunc func(a, b matrix.Row, n int) float64

// MetricByName resuelve el nombre de métrica configurado.
func MetricByName(name string) (DistanceFunc, error) {
	switch name {
	case "", "cosine":
		return CosineDistance, nil
	case "jaccard":
		return JaccardDistance, nil
	case "pearson":
		return PearsonDistance, nil
	default:
		return nil, fmt.Errorf("knn: unknown metric %q", name)
	}
}

// CosineDistance is 1 - cos(a,b). Rows with zero norm are maximally far
// from everything.
func CosineDistance(a, b matrix.Row, _ int) float64 {
	if a.Norm == 0 || b.Norm == 0 {
		return 1
	}
	return 1 - sparseDot(a, b)/(a.Norm*b.Norm)
}

// JaccardDistance compara los conjuntos de usuarios que calificaron cada
// ítem, ignorando el valor del rating.
func JaccardDistance(a, b matrix.Row, _ int) float64 {
	small, big := a.Cols, b.Cols
	if len(small) > len(big) {
		small, big = big, small
	}
	inter := 0
	for u := range small {
		if _, ok := big[u]; ok {
			inter++
		}
	}
	union := len(a.Cols) + len(b.Cols) - inter
	if union == 0 {
		return 1
	}
	return 1 - float64(inter)/float64(union)
}

// PearsonDistance is 1 - r over the full user dimension, with absent
// ratings taken as zero.
func PearsonDistance(a, b matrix.Row, n int) float64 {
	if n == 0 {
		return 1
	}
	nf := float64(n)
	meanA := a.Sum / nf
	meanB := b.Sum / nf

	cov := sparseDot(a, b) - nf*meanA*meanB
	varA := a.Norm*a.Norm - nf*meanA*meanA
	varB := b.Norm*b.Norm - nf*meanB*meanB
	if varA <= 0 || varB <= 0 {
		return 1
	}
	return 1 - cov/math.Sqrt(varA*varB)
}

func sparseDot(a, b matrix.Row) float64 {
	small, big := a.Cols, b.Cols
	if len(small) > len(big) {
		small, big = big, small
	}
	var s float64
	for u, v := range small {
		if w, ok := big[u]; ok {
			s += v * w
		}
	}
	return s
}
