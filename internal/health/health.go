package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coldflix/internal/cache"
	"coldflix/internal/dataset"
	"coldflix/internal/plattform"
)

// Status es la respuesta del healthcheck.
type Status struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
}

// Service define el chequeo de salud.
type Service interface {
	Check(ctx context.Context) Status
}

type healthService struct {
	store       *dataset.Store
	mongoClient *plattform.MongoService // opcional
	cacheClient *cache.Client           // opcional
}

// NewService crea el servicio de salud. Mongo y Redis pueden ser nil.
func NewService(store *dataset.Store, mongoClient *plattform.MongoService, cacheClient *cache.Client) Service {
	return &healthService{
		store:       store,
		mongoClient: mongoClient,
		cacheClient: cacheClient,
	}
}

func (s *healthService) Check(ctx context.Context) Status {
	services := make(map[string]interface{})
	overallStatus := "ok"

	// 1. Dataset: cargado una vez al arranque, si está vacío algo anda mal
	datasetStatus := "ok"
	if s.store.Matrix.Items() == 0 {
		datasetStatus = "empty"
		overallStatus = "degraded"
	}
	services["dataset"] = map[string]interface{}{
		"status":  datasetStatus,
		"users":   len(s.store.Users),
		"titles":  len(s.store.Titles),
		"ratings": len(s.store.Ratings),
	}

	// 2. MongoDB (auth e historial)
	if s.mongoClient != nil {
		mongoStatus := "ok"
		if err := s.mongoClient.Ping(ctx); err != nil {
			mongoStatus = "down"
			overallStatus = "degraded"
		}
		services["mongodb"] = map[string]string{"status": mongoStatus}
	} else {
		services["mongodb"] = map[string]string{"status": "disabled"}
	}

	// 3. Redis (caché de respuestas)
	if s.cacheClient != nil {
		cacheStatus := "ok"
		if err := s.cacheClient.Ping(ctx); err != nil {
			cacheStatus = "down"
			// la caché es opcional, no degrada el servicio
		}
		services["redis"] = map[string]string{"status": cacheStatus}
	} else {
		services["redis"] = map[string]string{"status": "disabled"}
	}

	return Status{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Services:  services,
	}
}

// Handler expone el endpoint de salud.
type Handler struct {
	svc Service
}

// NewHandler crea el handler de salud.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registra GET /health.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/health", h.HealthCheck)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.svc.Check(c.Request.Context())
	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, status)
}
