package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config reúne todos los parámetros del servicio. Todo sale de variables
// de entorno con defaults razonables, así que el binario corre sin flags.
type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	DataDir     string
	UsersFile   string
	RatingsFile string
	TitlesFile  string

	AgeRange      int
	MinCohortSize int
	NeighborK     int
	MaxRecs       int
	Metric        string

	MongoURI    string
	MongoDBName string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load lee la configuración del entorno.
func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":5000"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),

		DataDir:     getenv("DATA_DIR", "data"),
		UsersFile:   getenv("USERS_FILE", "movies_users.csv"),
		RatingsFile: getenv("RATINGS_FILE", "movies_ratings_cleaned.csv"),
		TitlesFile:  getenv("TITLES_FILE", "movies_titles_with_genres.csv"),

		AgeRange:      getint("AGE_RANGE", 5),
		MinCohortSize: getint("MIN_COHORT_SIZE", 3),
		NeighborK:     getint("NEIGHBOR_K", 100),
		MaxRecs:       getint("MAX_RECS", 5),
		Metric:        getenv("SIMILARITY_METRIC", "cosine"),

		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDBName: getenv("MONGO_DB_NAME", "coldflix"),
		JWTSecret:   getenv("JWT_SECRET", "default-secret-key"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		CacheTTL:      time.Duration(getint("CACHE_TTL_SECONDS", 3600)) * time.Second,
	}
}

// UsersPath devuelve la ruta completa del CSV de usuarios.
func (c Config) UsersPath() string { return filepath.Join(c.DataDir, c.UsersFile) }

// RatingsPath devuelve la ruta completa del CSV de ratings.
func (c Config) RatingsPath() string { return filepath.Join(c.DataDir, c.RatingsFile) }

// TitlesPath devuelve la ruta completa del CSV de títulos.
func (c Config) TitlesPath() string { return filepath.Join(c.DataDir, c.TitlesFile) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
