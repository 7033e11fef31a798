package mapview

import (
	"context"
	"coordinate-converter-service/internal/domain"
	"coordinate-converter-service/internal/platform/obs"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLMapView is a Postgres-backed map view store (pgx stdlib driver).
type SQLMapView struct {
	DB *sql.DB
}

func NewSQLMapView(db *sql.DB) *SQLMapView {
	return &SQLMapView{DB: db}
}

func (s *SQLMapView) FlyTo(
	ctx context.Context,
	view string,
	c domain.Coordinate,
	minZoom int,
) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.sql.FlyTo")(&err)

	if s.DB == nil {
		return domain.MapState{}, errors.New("map view: db is nil")
	}
	if strings.TrimSpace(view) == "" {
		return domain.MapState{}, errors.New("fly to: view id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.MapState{}, fmt.Errorf("fly to: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Row lock serializes concurrent clicks on the same view.
	current, err := s.load(ctx, tx, view, `
	SELECT lat, lon, zoom
	FROM map_views
	WHERE view_id = $1
	FOR UPDATE;
	`)
	if err != nil {
		return domain.MapState{}, err
	}
	next := current.FlyTo(c, minZoom)

	_, err = tx.ExecContext(ctx, `
	INSERT INTO map_views (view_id, lat, lon, zoom, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (view_id) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		zoom = EXCLUDED.zoom,
		updated_at = EXCLUDED.updated_at;
	`, view, next.Center.Lat, next.Center.Lon, next.Zoom)
	if err != nil {
		return domain.MapState{}, fmt.Errorf("fly to view=%q: %w", view, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.MapState{}, fmt.Errorf("fly to commit: %w", err)
	}

	return next, nil
}

func (s *SQLMapView) Current(ctx context.Context, view string) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.sql.Current")(&err)

	if s.DB == nil {
		return domain.MapState{}, errors.New("map view: db is nil")
	}

	return s.load(ctx, s.DB, view, `
	SELECT lat, lon, zoom
	FROM map_views
	WHERE view_id = $1;
	`)
}

func (s *SQLMapView) Reset(ctx context.Context, view string) (err error) {
	defer obs.Time(ctx, "mapview.sql.Reset")(&err)

	if s.DB == nil {
		return errors.New("map view: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM map_views WHERE view_id = $1;`, view); err != nil {
		return fmt.Errorf("reset map view=%q: %w", view, err)
	}
	return nil
}

func (s *SQLMapView) load(ctx context.Context, q rowQuerier, view string, query string) (domain.MapState, error) {
	var lat, lon float64
	var zoom int

	err := q.QueryRowContext(ctx, query, view).Scan(&lat, &lon, &zoom)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultMapState(), nil
	}
	if err != nil {
		return domain.MapState{}, fmt.Errorf("get map view: query map_views table: %w", err)
	}

	return stateFromRow(lat, lon, zoom), nil
}
