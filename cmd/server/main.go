package main

import (
	"context"
	"coordinate-converter-service/internal/adapters/mapview"
	"coordinate-converter-service/internal/api"
	"coordinate-converter-service/internal/config"
	"coordinate-converter-service/internal/platform/db"
	"coordinate-converter-service/internal/ports"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the configured map view store behind its port and starts the HTTP server.
func main() {
	config.Load()

	port := config.Get("PORT", "8080")
	store := config.Get("MAP_STORE", "memory")
	ttl := config.Duration("MAP_VIEW_TTL", 24*time.Hour)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mapView, closeStore, err := openMapView(ctx, store, ttl)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	router := api.NewRouter(ctx, mapView, api.RouterConfig{
		MinZoom:        config.Int("MIN_ZOOM", 10),
		RateLimitRPS:   float64(config.Int("RATE_LIMIT_RPS", 20)),
		RateLimitBurst: config.Int("RATE_LIMIT_BURST", 40),
		RateLimitIdle:  config.Duration("RATE_LIMIT_IDLE", 10*time.Minute),
	})

	log.Printf("Server listening addr=:%s map_store=%s", port, store)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// openMapView builds the map view adapter selected by MAP_STORE.
// The returned func releases the underlying connection.
func openMapView(ctx context.Context, store string, ttl time.Duration) (ports.MapView, func(), error) {
	switch store {
	case "memory":
		mv := mapview.NewMemoryMapView(ttl)
		mv.StartCleanup(ctx, time.Hour)
		return mv, func() {}, nil

	case "sqlite":
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			return nil, nil, err
		}
		if err := initSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return mapview.NewSqliteMapView(conn), func() { conn.Close() }, nil

	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, nil, fmt.Errorf("open map view: DATABASE_URL is required for MAP_STORE=postgres")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := initSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return mapview.NewSQLMapView(conn), func() { conn.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: config.Get("REDIS_ADDR", "localhost:6379")})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("open map view: ping redis: %w", err)
		}
		return mapview.NewRedisMapView(client, ttl), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("open map view: unknown MAP_STORE %q", store)
	}
}

func initSchema(conn *sql.DB) error {
	if err := mapview.InitSchema(conn); err != nil {
		return fmt.Errorf("open map view: %w", err)
	}
	return nil
}
