package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var db *pgxpool.Pool

// initDB connects the optional Postgres resolution cache. The resolver never
// touches it; cache reads and writes happen in the tool layer around Resolve.
func initDB() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS resolved_places (
		place_key   TEXT PRIMARY KEY,
		place_name  TEXT NOT NULL,
		dataset_id  TEXT NOT NULL,
		level       TEXT NOT NULL,
		geometry    JSONB NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := pool.Exec(context.Background(), schema); err != nil {
		pool.Close()
		return fmt.Errorf("failed to create cache schema: %w", err)
	}

	db = pool
	return nil
}

func dbAvailable() bool {
	return db != nil
}

// cacheKey normalizes a place name for cache lookups. The resolver itself
// stays variant-aware; the cache only needs a stable key per input string.
func cacheKey(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// lookupCachedPlace returns a previously resolved boundary, or nil on miss.
func lookupCachedPlace(ctx context.Context, place string) (*ResolvedBoundary, error) {
	var datasetID, level string
	var geometry []byte

	err := db.QueryRow(ctx,
		`SELECT dataset_id, level, geometry FROM resolved_places WHERE place_key = $1`,
		cacheKey(place),
	).Scan(&datasetID, &level, &geometry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ResolvedBoundary{
		Geometry:  &Geometry{GeoJSON: json.RawMessage(geometry)},
		DatasetID: datasetID,
		Level:     level,
	}, nil
}

// storeCachedPlace records a resolution for future lookups.
func storeCachedPlace(ctx context.Context, place string, rb *ResolvedBoundary) error {
	_, err := db.Exec(ctx, `
		INSERT INTO resolved_places (place_key, place_name, dataset_id, level, geometry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (place_key) DO UPDATE
		SET dataset_id = EXCLUDED.dataset_id,
		    level = EXCLUDED.level,
		    geometry = EXCLUDED.geometry,
		    resolved_at = now()`,
		cacheKey(place), place, rb.DatasetID, rb.Level, []byte(rb.Geometry.GeoJSON),
	)
	return err
}

// resolvePlace is what tool handlers call: cache in front of the resolver
// when Postgres is configured, plain resolution otherwise. Cache failures are
// logged and never block resolution.
func resolvePlace(ctx context.Context, place string) (*ResolvedBoundary, error) {
	if dbAvailable() {
		if rb, err := lookupCachedPlace(ctx, place); err != nil {
			log.Printf("cache lookup for %q failed: %v", place, err)
		} else if rb != nil {
			return rb, nil
		}
	}

	rb, err := resolver.Resolve(ctx, place)
	if err != nil {
		return nil, err
	}

	if dbAvailable() {
		if err := storeCachedPlace(ctx, place, rb); err != nil {
			log.Printf("cache store for %q failed: %v", place, err)
		}
	}
	return rb, nil
}
