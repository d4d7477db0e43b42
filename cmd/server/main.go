package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"visit-routing-service/internal/adapters/cache"
	"visit-routing-service/internal/adapters/distance"
	"visit-routing-service/internal/api"
	"visit-routing-service/internal/config"
	"visit-routing-service/internal/metrics"
	"visit-routing-service/internal/platform/db"
	"visit-routing-service/internal/ports"
	"visit-routing-service/internal/solver"
)

// main is the application composition root.
// It wires concrete adapters (Postgres/Redis caches, Google Directions,
// local-search solver) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	metrics.RegisterDefault()

	// Travel-time cache: Redis when configured, Postgres as the second
	// choice, otherwise uncached.
	var travelCache ports.TravelTimeCache
	switch {
	case strings.TrimSpace(cfg.RedisURL) != "":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		client := redis.NewClient(opts)
		travelCache = cache.NewRedisTravelTimeCache(client, time.Duration(cfg.CacheTTLHours)*time.Hour)
		log.Printf("travel-time cache backend=redis")
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()
		if err := cache.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		travelCache = cache.NewPostgresTravelTimeCache(sqlDB)
		log.Printf("travel-time cache backend=postgres")
	default:
		log.Printf("travel-time cache backend=none")
	}

	estimator := distance.NewGeodesicEstimator(cfg.SolverSeed)

	var google ports.DistanceProvider
	if strings.TrimSpace(cfg.GoogleAPIKey) != "" {
		google, err = distance.NewGoogleDistanceProvider(cfg.GoogleAPIKey, estimator, travelCache)
		if err != nil {
			log.Fatal(err)
		}
	}

	engine := solver.New(cfg.SolverSeed)
	router := api.NewRouter(engine, estimator, google, travelCache)

	// Write timeout leaves headroom for long solver budgets.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
