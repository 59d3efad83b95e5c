// Command import-cities downloads a GeoNames cities dump and loads it into
// the sqlite gazetteer used for search autocomplete.
package main

import (
	"archive/zip"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"skycast/internal/geo"
)

const (
	defaultCitiesURL = "https://download.geonames.org/export/dump/cities15000.zip"
	dataDir          = "data"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	citiesURL := flag.String("url", defaultCitiesURL, "GeoNames cities dump URL")
	dbPath := flag.String("db", "", "gazetteer database path (default GAZETTEER_PATH or data/cities.db)")
	flag.Parse()

	if err := run(*citiesURL, *dbPath); err != nil {
		log.Fatal(err)
	}
}

func run(citiesURL, dbPath string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	store, err := geo.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open gazetteer: %w", err)
	}
	defer store.Close()

	zipPath := filepath.Join(dataDir, "cities.zip")
	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		fmt.Println("Downloading cities dump...")
		if err := downloadFile(citiesURL, zipPath); err != nil {
			return err
		}
	} else {
		fmt.Println("Using existing cities.zip")
	}

	fmt.Println("Importing cities...")
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".txt") {
			rc, err := f.Open()
			if err != nil {
				return err
			}
			defer rc.Close()
			return importCities(store, rc)
		}
	}
	return fmt.Errorf("no txt file found in %s", zipPath)
}

func downloadFile(url, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

// importCities parses the GeoNames tab-separated dump. Relevant columns:
// 1 name, 4 latitude, 5 longitude, 8 country code, 10 admin1 code,
// 14 population.
func importCities(store *geo.Store, r io.Reader) error {
	tx, err := store.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO cities (name, region, country, latitude, longitude, population) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < 15 {
			continue
		}

		lat, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			continue
		}
		population, _ := strconv.ParseInt(record[14], 10, 64)

		if _, err := stmt.Exec(record[1], record[10], record[8], lat, lon, population); err != nil {
			return fmt.Errorf("failed to insert %s: %w", record[1], err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Printf("Imported %d cities\n", count)
	return nil
}
