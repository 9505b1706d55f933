package recommend

import (
	"context"

	"coldflix/internal/cohort"
)

// DefaultGenres son los géneros pedidos cuando el request no trae ninguno.
var DefaultGenres = []string{"Action", "Romance", "Comedy", "Thrillers", "Documentaries"}

const (
	DefaultK        = 100
	DefaultMaxRecs  = 5
	DefaultTopSeeds = 3
)

// Status distingue los tres desenlaces de una petición: hubo
// recomendaciones, no hubo usuarios parecidos, o la cohorte existió pero
// ningún género produjo resultados. Los dos últimos no son errores.
type Status int

const (
	StatusOK Status = iota
	StatusNoMatchingUsers
	StatusNoRecommendations
)

// Request es el contrato in-process del orquestador. Los filtros de
// plataforma llegan ya ordenados (el handler fija el orden).
type Request struct {
	Age       int
	Gender    string
	Platforms []cohort.PlatformFilter
	Genres    []string
}

// Result es la salida estructurada de una petición.
type Result struct {
	Status          Status              `json:"status"`
	Recommendations map[string][]string `json:"recommendations,omitempty"`
	SkippedFilters  []string            `json:"skipped_filters"`
}

// Message devuelve el texto para los desenlaces sin recomendaciones.
func (r *Result) Message() string {
	switch r.Status {
	case StatusNoMatchingUsers:
		return "No matching users found."
	case StatusNoRecommendations:
		return "No genre-based recommendations found."
	}
	return ""
}

// Service define la lógica de recomendación expuesta a los handlers.
type Service interface {
	Recommend(ctx context.Context, req Request) (*Result, error)
}
