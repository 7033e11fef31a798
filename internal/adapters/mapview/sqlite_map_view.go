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

// SQLite backed map view store. Open the database with a single connection;
// FlyTo reads then writes inside one transaction.
type SqliteMapView struct {
	DB *sql.DB
}

func NewSqliteMapView(db *sql.DB) *SqliteMapView {
	return &SqliteMapView{DB: db}
}

func (s *SqliteMapView) FlyTo(
	ctx context.Context,
	view string,
	c domain.Coordinate,
	minZoom int,
) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.sqlite.FlyTo")(&err)

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

	current, err := s.load(ctx, tx, view)
	if err != nil {
		return domain.MapState{}, err
	}
	next := current.FlyTo(c, minZoom)

	_, err = tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO map_views (
		view_id,
		lat,
		lon,
		zoom
	)
	VALUES (?, ?, ?, ?);
	`, view, next.Center.Lat, next.Center.Lon, next.Zoom)
	if err != nil {
		return domain.MapState{}, fmt.Errorf("fly to view=%q: %w", view, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.MapState{}, fmt.Errorf("fly to commit: %w", err)
	}

	return next, nil
}

func (s *SqliteMapView) Current(ctx context.Context, view string) (_ domain.MapState, err error) {
	defer obs.Time(ctx, "mapview.sqlite.Current")(&err)

	if s.DB == nil {
		return domain.MapState{}, errors.New("map view: db is nil")
	}

	return s.load(ctx, s.DB, view)
}

func (s *SqliteMapView) Reset(ctx context.Context, view string) (err error) {
	defer obs.Time(ctx, "mapview.sqlite.Reset")(&err)

	if s.DB == nil {
		return errors.New("map view: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM map_views WHERE view_id = ?;`, view); err != nil {
		return fmt.Errorf("reset map view=%q: %w", view, err)
	}
	return nil
}

func (s *SqliteMapView) load(ctx context.Context, q rowQuerier, view string) (domain.MapState, error) {
	var lat, lon float64
	var zoom int

	err := q.QueryRowContext(ctx, `
	SELECT
		lat,
		lon,
		zoom
	FROM map_views
	WHERE view_id = ?;
	`, view).Scan(&lat, &lon, &zoom)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultMapState(), nil
	}
	if err != nil {
		return domain.MapState{}, fmt.Errorf("get map view: query map_views table: %w", err)
	}

	return stateFromRow(lat, lon, zoom), nil
}
