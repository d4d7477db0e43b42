package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"visit-routing-service/internal/adapters/cache"
	"visit-routing-service/internal/platform/db"
)

// dbtool initializes the travel-time cache schema. Run once per database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	log.Println("Initializing travel-time cache schema...")
	if err := cache.InitSchema(sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
