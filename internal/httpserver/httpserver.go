package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coldflix/internal/auth"
	"coldflix/internal/cache"
	"coldflix/internal/cohort"
	"coldflix/internal/config"
	"coldflix/internal/dataset"
	"coldflix/internal/health"
	"coldflix/internal/monitoring"
	"coldflix/internal/plattform"
	"coldflix/internal/recommend"
	"coldflix/pkg/styles"
)

// NewRouter arma el router con todas las rutas del servicio. Mongo y Redis
// son opcionales: sin ellos el servicio responde recomendaciones igual,
// solo que sin cuentas, historial ni caché.
func NewRouter(ctx context.Context, cfg config.Config, store *dataset.Store) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	tokenManager := auth.NewJWTTokenManager(cfg.JWTSecret)

	var mongoClient *plattform.MongoService
	var history recommend.Repository
	if cfg.MongoURI != "" {
		client, err := plattform.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			log.Print(styles.SprintfS("warn", "[HTTP] MongoDB no disponible, se continúa sin auth ni historial: %v", err))
		} else {
			mongoClient = client

			usersColl := mongoClient.GetCollection(cfg.MongoDBName, "users")
			authHandler := auth.NewHandler(auth.NewService(auth.NewMongoRepository(usersColl), tokenManager))
			authHandler.RegisterRoutes(api.Group("/auth"))
			authHandler.RegisterRoutes(r.Group("/"))

			history = recommend.NewMongoRepository(mongoClient.GetCollection(cfg.MongoDBName, "history"))
		}
	}

	cacheClient := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	selector := cohort.NewSelector(cfg.AgeRange, cfg.MinCohortSize)
	recSvc := recommend.NewService(store, store.Index, selector, history, cacheClient, recommend.Options{
		K:        cfg.NeighborK,
		MaxRecs:  cfg.MaxRecs,
		Metric:   cfg.Metric,
		CacheTTL: cfg.CacheTTL,
	})
	recHandler := recommend.NewHandler(recSvc)
	recHandler.RegisterRoutes(api.Group("/recommendations"))
	recHandler.RegisterRoutes(r.Group("/recommendations"))

	healthHandler := health.NewHandler(health.NewService(store, mongoClient, cacheClient))
	healthHandler.RegisterRoutes(r.Group("/"))
	healthHandler.RegisterRoutes(api)

	// el monitoreo va detrás de JWT cuando hay cuentas; sin Mongo queda abierto
	monHandler := monitoring.NewHandler(monitoring.NewService(store, cfg.Metric))
	monGroup := api.Group("/")
	if mongoClient != nil {
		monGroup.Use(auth.AuthMiddleware(tokenManager))
	}
	monHandler.RegisterRoutes(monGroup)

	return r
}
