package api

import (
	"context"
	"coordinate-converter-service/internal/api/handlers"
	"coordinate-converter-service/internal/ports"
	"net/http"
	"time"
)

type RouterConfig struct {
	// Zoom level the map is brought to (at least) when a point is shown.
	MinZoom        int
	RateLimitRPS   float64
	RateLimitBurst int
	// Clients idle this long lose their rate limit bucket. Zero means 10 minutes.
	RateLimitIdle  time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// Background cleanup stops when ctx is done.
func NewRouter(ctx context.Context, mapView ports.MapView, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	coordHandler := &handlers.CoordinateHandler{
		Map:     mapView,
		MinZoom: cfg.MinZoom,
	}
	mapHandler := &handlers.MapHandler{Coordinates: coordHandler}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/convert", coordHandler.Convert)
	mux.HandleFunc("/parse", coordHandler.Parse)
	mux.HandleFunc("/map", mapHandler.View)
	mux.HandleFunc("/map/click", mapHandler.Click)

	idle := cfg.RateLimitIdle
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	limits := newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, idle)
	limits.StartCleanup(ctx, idle)
	return loggingMiddleware(rateLimitMiddleware(limits, mux))
}
