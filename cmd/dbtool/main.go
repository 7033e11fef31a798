package main

import (
	"coordinate-converter-service/internal/adapters/mapview"
	"coordinate-converter-service/internal/config"
	"coordinate-converter-service/internal/platform/db"
	"database/sql"
	"log"
)

// dbtool creates the map view schema ahead of deployment.
// It targets Postgres when DATABASE_URL is set and the SQLite file at DB_PATH otherwise.
func main() {
	config.Load()

	var (
		conn *sql.DB
		err  error
	)
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		log.Println("Using postgres (DATABASE_URL)")
		conn, err = db.Open(databaseURL)
	} else {
		dbPath := config.Get("DB_PATH", "data/app.db")
		log.Printf("Using sqlite path=%s", dbPath)
		conn, err = db.OpenSQLite(dbPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := mapview.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
