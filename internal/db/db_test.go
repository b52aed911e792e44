package db

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swelljoe/zipcast/internal/geo"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for testing
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	require.NoError(t, initSchema(db))
	t.Cleanup(func() { db.Close() })

	return &DB{db}
}

func testStore(t *testing.T) *geo.Store {
	t.Helper()
	store, err := geo.LoadReader(strings.NewReader(`"zip","abbr","lat","lon","city","state"
"94102","CA","37.7793","-122.4193","San Francisco","California"
"92101","CA","32.7157","-117.1611","San Diego","California"
"10001","NY","40.7506","-73.9972","New York","New York"
`))
	require.NoError(t, err)
	return store
}

func TestImportAndLookup(t *testing.T) {
	testDB := setupTestDB(t)

	n, err := testDB.ImportLocations(testStore(t))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tests := []struct {
		name    string
		zip     string
		city    string
		wantErr bool
	}{
		{name: "san francisco", zip: "94102", city: "San Francisco"},
		{name: "new york", zip: "10001", city: "New York"},
		{name: "missing", zip: "99999", wantErr: true},
		{name: "empty", zip: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := testDB.Lookup(tt.zip)
			if tt.wantErr {
				assert.ErrorIs(t, err, geo.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.city, loc.City)
			assert.Equal(t, tt.zip, loc.PostalCode)
		})
	}
}

func TestImportKeepsFirstRecord(t *testing.T) {
	testDB := setupTestDB(t)

	_, err := testDB.ImportLocations(testStore(t))
	require.NoError(t, err)

	later, err := geo.LoadReader(strings.NewReader("header\n10001,NY,0,0,Elsewhere,New York\n10118,NY,40.7,-73.9,New York,New York\n"))
	require.NoError(t, err)
	n, err := testDB.ImportLocations(later)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	loc, err := testDB.Lookup("10001")
	require.NoError(t, err)
	assert.Equal(t, "New York", loc.City)
	assert.Equal(t, "40.7506", loc.Latitude)

	count, err := testDB.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestOpen(t *testing.T) {
	// Test with a temporary database file
	tmpFile := filepath.Join(t.TempDir(), "test_zipcast.db")

	db, err := Open(tmpFile)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	count, err := db.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "zipcast.db"))
	assert.Error(t, err)
}

func TestNilDB(t *testing.T) {
	var db *DB
	_, err := db.Lookup("90210")
	assert.EqualError(t, err, "database not initialized")

	_, err = db.ImportLocations(geo.NewStore())
	assert.EqualError(t, err, "database not initialized")
}
