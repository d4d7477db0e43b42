package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/platform/obs"
)

// PostgresTravelTimeCache is a SQL-backed cache for directional
// travel-time lookups, keyed by coordinate pair.
type PostgresTravelTimeCache struct {
	DB *sql.DB
}

func NewPostgresTravelTimeCache(db *sql.DB) *PostgresTravelTimeCache {
	return &PostgresTravelTimeCache{DB: db}
}

func (c *PostgresTravelTimeCache) Get(ctx context.Context, origin, destination domain.Coordinates) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "travelcache.pg.Get")(&err)

	if c.DB == nil {
		return 0, false, errors.New("travel time cache: db is nil")
	}

	q := `
	SELECT minutes
	FROM travel_time_cache
	WHERE origin = $1
	    AND destination = $2;
	`

	var minutes float64
	err = c.DB.QueryRowContext(ctx, q, origin.Key(), destination.Key()).Scan(&minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get travel time cache: query travel_time_cache table: %w", err)
	}

	return minutes, true, nil
}

func (c *PostgresTravelTimeCache) Put(ctx context.Context, origin, destination domain.Coordinates, minutes float64) (err error) {
	defer obs.Time(ctx, "travelcache.pg.Put")(&err)

	if c.DB == nil {
		return errors.New("travel time cache: db is nil")
	}

	q := `
	INSERT INTO travel_time_cache (origin, destination, minutes)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination)
	DO UPDATE SET minutes = EXCLUDED.minutes;
	`

	if _, err := c.DB.ExecContext(ctx, q, origin.Key(), destination.Key(), minutes); err != nil {
		return fmt.Errorf("put travel time cache: upsert travel_time_cache table: %w", err)
	}

	return nil
}

// InitSchema creates the cache table when it does not exist yet.
func InitSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS travel_time_cache (
		origin      TEXT NOT NULL,
		destination TEXT NOT NULL,
		minutes     DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init travel time cache schema: %w", err)
	}

	return nil
}
