package mapview

import (
	"context"
	"coordinate-converter-service/internal/domain"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the map view table. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMapViewsQuery := `
	CREATE TABLE IF NOT EXISTS map_views (
		view_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		zoom INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_map_views_updated_at
	ON map_views(updated_at);
	`

	statements := []string{
		createMapViewsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func stateFromRow(lat, lon float64, zoom int) domain.MapState {
	marker := domain.Coordinate{Lat: lat, Lon: lon}
	return domain.MapState{Center: marker, Zoom: zoom, Marker: &marker}
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
