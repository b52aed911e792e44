package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/swelljoe/zipcast/internal/geo"
)

// DB wraps a database connection
type DB struct {
	*sql.DB
}

// Open opens (and creates if needed) the SQLite location index at path and
// ensures the schema exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS locations (
	zip        TEXT PRIMARY KEY,
	state_abbr TEXT NOT NULL,
	latitude   TEXT NOT NULL,
	longitude  TEXT NOT NULL,
	city       TEXT NOT NULL,
	state      TEXT NOT NULL
)`)
	return err
}

// ImportLocations copies every record of store into the locations table in
// one transaction. Postal codes already present are left untouched, so the
// first record imported for a code wins. It returns the number of rows
// inserted.
func (d *DB) ImportLocations(store *geo.Store) (int, error) {
	if d == nil || d.DB == nil {
		return 0, errors.New("database not initialized")
	}

	tx, err := d.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO locations
		(zip, state_abbr, latitude, longitude, city, state) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	err = store.Each(func(loc geo.Location) error {
		res, err := stmt.Exec(loc.PostalCode, loc.StateAbbreviation, loc.Latitude, loc.Longitude, loc.City, loc.State)
		if err != nil {
			return fmt.Errorf("insert %s: %w", loc.PostalCode, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// Lookup returns the location for postalCode, or an error wrapping
// geo.ErrNotFound.
func (d *DB) Lookup(postalCode string) (geo.Location, error) {
	if d == nil || d.DB == nil {
		return geo.Location{}, errors.New("database not initialized")
	}

	var loc geo.Location
	err := d.QueryRow(
		`SELECT zip, state_abbr, latitude, longitude, city, state FROM locations WHERE zip = ?`,
		postalCode,
	).Scan(&loc.PostalCode, &loc.StateAbbreviation, &loc.Latitude, &loc.Longitude, &loc.City, &loc.State)
	if errors.Is(err, sql.ErrNoRows) {
		return geo.Location{}, fmt.Errorf("%w: %s", geo.ErrNotFound, postalCode)
	}
	if err != nil {
		return geo.Location{}, fmt.Errorf("lookup %s: %w", postalCode, err)
	}
	return loc, nil
}

// Count returns the number of indexed postal codes.
func (d *DB) Count() (int, error) {
	var n int
	err := d.QueryRow(`SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, err
}
