// Package geo provides the local city gazetteer backing search
// autocomplete and default-city resolution. It is static reference data,
// not weather state; the dashboard works without it, just without
// suggestions.
package geo

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// City is one gazetteer entry.
type City struct {
	Name       string  `json:"name"`
	Region     string  `json:"region,omitempty"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population int64   `json:"-"`
}

// Store wraps the gazetteer database.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the gazetteer database. Path defaults to the
// GAZETTEER_PATH environment variable, then "data/cities.db".
func Open(path string) (*Store, error) {
	if path == "" {
		path = os.Getenv("GAZETTEER_PATH")
	}
	if path == "" {
		path = "data/cities.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gazetteer: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping gazetteer: %w", err)
	}

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			population INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_cities_name ON cities(name COLLATE NOCASE);
	`)
	return err
}

// SearchCities returns up to limit cities whose name starts with the query,
// largest first so the well-known match surfaces ahead of namesakes.
func (s *Store) SearchCities(query string, limit int) ([]City, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.Query(`
		SELECT name, region, country, latitude, longitude, population
		FROM cities
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY population DESC, name
		LIMIT ?
	`, query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Name, &c.Region, &c.Country, &c.Lat, &c.Lon, &c.Population); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// InsertCity adds one gazetteer entry; used by the importer.
func (s *Store) InsertCity(c City) error {
	_, err := s.Exec(
		"INSERT INTO cities (name, region, country, latitude, longitude, population) VALUES (?, ?, ?, ?, ?, ?)",
		c.Name, c.Region, c.Country, c.Lat, c.Lon, c.Population,
	)
	return err
}
