package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/swelljoe/zipcast/internal/config"
	"github.com/swelljoe/zipcast/internal/db"
	"github.com/swelljoe/zipcast/internal/geo"
)

// defaultDBPath is written when neither -db nor DB_PATH is set.
const defaultDBPath = "zipcast.db"

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	flag.StringVar(&cfg.ZipsFile, "zips", cfg.ZipsFile, "Postal code CSV to import")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database to write")
	flag.Parse()

	if err := run(cfg.ZipsFile, cfg.DBPath); err != nil {
		log.Fatal(err)
	}
}

func run(zipsFile, dbPath string) error {
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	fmt.Printf("Reading %s...\n", zipsFile)
	store, err := geo.Load(zipsFile)
	if err != nil {
		return err
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer database.Close()

	n, err := database.ImportLocations(store)
	if err != nil {
		return fmt.Errorf("failed to import locations: %w", err)
	}

	total, err := database.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d postal codes into %s (%d indexed).\n", n, store.Len(), dbPath, total)
	return nil
}
