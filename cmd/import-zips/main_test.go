package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swelljoe/zipcast/internal/db"
	"github.com/swelljoe/zipcast/internal/geo"
)

func TestRunImportsCSV(t *testing.T) {
	dir := t.TempDir()
	zips := filepath.Join(dir, "zips.csv")
	require.NoError(t, os.WriteFile(zips, []byte(
		"\"zip\",\"abbr\",\"lat\",\"lon\",\"city\",\"state\"\n"+
			"\"90210\",\"CA\",\"34.0901\",\"-118.4065\",\"Beverly Hills\",\"California\"\n"+
			"\"10001\",\"NY\",\"40.7506\",\"-73.9972\",\"New York\",\"New York\"\n"), 0o644))
	dbPath := filepath.Join(dir, "zipcast.db")

	require.NoError(t, run(zips, dbPath))
	// Re-running is idempotent.
	require.NoError(t, run(zips, dbPath))

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	count, err := database.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	loc, err := database.Lookup("90210")
	require.NoError(t, err)
	assert.Equal(t, "Beverly Hills", loc.City)
}

func TestRunMissingCSV(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "zipcast.db"))

	var fileErr *geo.FileError
	assert.ErrorAs(t, err, &fileErr)
}
