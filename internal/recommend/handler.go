package recommend

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"coldflix/internal/cohort"
	"coldflix/internal/dataset"
)

// Handler expone el endpoint HTTP de recomendaciones.
type Handler struct {
	svc Service
}

// NewHandler crea el handler de recomendaciones.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers recommendation endpoints on the provided group.
// Mounting on r.Group("/recommendations") exposes POST /recommendations.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("", h.Recommend)
}

// recommendRequest es el body del POST. platforms admite booleanos,
// números 0/1 o strings yes/no, igual que el dataset.
type recommendRequest struct {
	Age       int            `json:"age" binding:"required"`
	Gender    string         `json:"gender" binding:"required"`
	Platforms map[string]any `json:"platforms"`
	Genres    []string       `json:"genres"`
}

func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido", "details": err.Error()})
		return
	}

	filters, err := platformFilters(req.Platforms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Recommend(c.Request.Context(), Request{
		Age:       req.Age,
		Gender:    req.Gender,
		Platforms: filters,
		Genres:    req.Genres,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if res.Status != StatusOK {
		c.JSON(http.StatusOK, gin.H{
			"message":         res.Message(),
			"skipped_filters": res.SkippedFilters,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": res.Recommendations,
		"skipped_filters": res.SkippedFilters,
	})
}

// platformFilters normaliza el objeto platforms del body a una lista
// ordenada por nombre. Un objeto JSON no define orden entre claves, así que
// el orden alfabético fija un orden de aplicación reproducible.
func platformFilters(raw map[string]any) ([]cohort.PlatformFilter, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	filters := make([]cohort.PlatformFilter, 0, len(names))
	for _, name := range names {
		v, err := flagValue(raw[name])
		if err != nil {
			return nil, fmt.Errorf("platforms[%s]: %w", name, err)
		}
		filters = append(filters, cohort.PlatformFilter{Name: name, Value: v})
	}
	return filters, nil
}

func flagValue(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case float64:
		return val != 0, nil
	case string:
		return dataset.ParseFlag(val)
	}
	return false, fmt.Errorf("valor de plataforma no booleano %v", v)
}
