package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"coldflix/internal/dataset"
)

// DatasetStats describe el estado compartido que sirve las recomendaciones.
type DatasetStats struct {
	Users       int    `json:"users"`
	Titles      int    `json:"titles"`
	Ratings     int    `json:"ratings"`
	MatrixItems int    `json:"matrix_items"`
	MatrixUsers int    `json:"matrix_users"`
	Metric      string `json:"metric"`
}

// SystemStats son métricas del proceso y del host.
type SystemStats struct {
	// Process specific
	NumGoroutine int    `json:"num_goroutine"`
	Alloc        uint64 `json:"alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	// System wide
	TotalRAM        uint64    `json:"total_ram"`
	AvailableRAM    uint64    `json:"available_ram"`
	UsedRAMPercent  float64   `json:"used_ram_percent"`
	TotalCPUCores   int       `json:"total_cpu_cores"`
	CPUUsagePercent []float64 `json:"cpu_usage_percent"`
}

// MonitoringStatus es la respuesta del endpoint de monitoreo.
type MonitoringStatus struct {
	Timestamp time.Time    `json:"timestamp"`
	Dataset   DatasetStats `json:"dataset"`
	System    SystemStats  `json:"system"`
}

// Service expone el estado de monitoreo.
type Service interface {
	GetStatus(ctx context.Context) MonitoringStatus
}

type monitoringService struct {
	store  *dataset.Store
	metric string
}

// NewService crea el servicio de monitoreo.
func NewService(store *dataset.Store, metric string) Service {
	return &monitoringService{store: store, metric: metric}
}

func (s *monitoringService) GetStatus(ctx context.Context) MonitoringStatus {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	vMem, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(0, true)

	sysStats := SystemStats{
		NumGoroutine: runtime.NumGoroutine(),
		Alloc:        memStats.Alloc,
		Sys:          memStats.Sys,
		NumGC:        memStats.NumGC,

		TotalCPUCores:   runtime.NumCPU(),
		CPUUsagePercent: cpuPercent,
	}
	if vMem != nil {
		sysStats.TotalRAM = vMem.Total
		sysStats.AvailableRAM = vMem.Available
		sysStats.UsedRAMPercent = vMem.UsedPercent
	}

	return MonitoringStatus{
		Timestamp: time.Now(),
		Dataset: DatasetStats{
			Users:       len(s.store.Users),
			Titles:      len(s.store.Titles),
			Ratings:     len(s.store.Ratings),
			MatrixItems: s.store.Matrix.Items(),
			MatrixUsers: s.store.Matrix.Users(),
			Metric:      s.metric,
		},
		System: sysStats,
	}
}

// Handler expone el endpoint de monitoreo.
type Handler struct {
	svc Service
}

// NewHandler crea el handler de monitoreo.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registra GET /monitoring.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/monitoring", h.GetMonitoringStatus)
}

func (h *Handler) GetMonitoringStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetStatus(c.Request.Context()))
}
