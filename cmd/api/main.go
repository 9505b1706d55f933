package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"coldflix/internal/config"
	"coldflix/internal/dataset"
	"coldflix/internal/httpserver"
	"coldflix/internal/knn"
	"coldflix/pkg/styles"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print(styles.SprintfS("info", "[MAIN] sin archivo .env, se usan variables de entorno"))
	}

	cfg := config.Load()

	metric, err := knn.MetricByName(cfg.Metric)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "[MAIN] métrica inválida: %v", err))
	}

	store, err := dataset.Load(dataset.Source{
		UsersPath:   cfg.UsersPath(),
		RatingsPath: cfg.RatingsPath(),
		TitlesPath:  cfg.TitlesPath(),
	}, metric)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "[MAIN] no se pudo cargar el dataset: %v", err))
	}
	styles.PrintFS("success", "[MAIN] dataset listo: %d usuarios, %d títulos, %d ratings",
		len(store.Users), len(store.Titles), len(store.Ratings))

	router := httpserver.NewRouter(context.Background(), cfg, store)
	styles.PrintFS("info", "[MAIN] escuchando en %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(styles.SprintfS("error", "[MAIN] servidor caído: %v", err))
	}
}
