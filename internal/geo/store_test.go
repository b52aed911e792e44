package geo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `"zip","state_abbr","latitude","longitude","city","state"
"90210","CA","34.0901","-118.4065","Beverly Hills","California"
"10001","NY","40.7506","-73.9972","New York","New York"
"10001","NY","0","0","Duplicate","New York"
73301,TX,30.2672,-97.7431,Austin,Texas
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zips.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndLookup(t *testing.T) {
	store, err := Load(writeDataset(t, testDataset))
	require.NoError(t, err)

	loc, err := store.Lookup("90210")
	require.NoError(t, err)
	assert.Equal(t, "Beverly Hills", loc.City)
	assert.Equal(t, "34.0901", loc.Latitude)
	assert.Equal(t, "-118.4065", loc.Longitude)
	assert.Equal(t, "CA", loc.StateAbbreviation)
	assert.Equal(t, "California", loc.State)
}

func TestLookupRepeatable(t *testing.T) {
	store, err := LoadReader(strings.NewReader(testDataset))
	require.NoError(t, err)

	// Earlier rows stay reachable after later ones were looked up.
	for _, code := range []string{"73301", "90210", "10001", "90210"} {
		_, err := store.Lookup(code)
		assert.NoError(t, err, code)
	}
}

func TestLookupNotFound(t *testing.T) {
	store, err := LoadReader(strings.NewReader(testDataset))
	require.NoError(t, err)

	_, err = store.Lookup("99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateFirstWins(t *testing.T) {
	store, err := LoadReader(strings.NewReader(testDataset))
	require.NoError(t, err)

	loc, err := store.Lookup("10001")
	require.NoError(t, err)
	assert.Equal(t, "New York", loc.City)
	assert.Equal(t, 3, store.Len())
}

func TestHeaderAlwaysDiscarded(t *testing.T) {
	// The first line is dropped even when it is a data row.
	data := "90210,CA,34.0901,-118.4065,Beverly Hills,California\n10001,NY,40.7506,-73.9972,New York,New York\n"
	store, err := LoadReader(strings.NewReader(data))
	require.NoError(t, err)

	_, err = store.Lookup("90210")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Lookup("10001")
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Contains(t, fileErr.Path, "nope.csv")

	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
	_, err = store.Lookup("90210")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadSkipsShortAndBlankRows(t *testing.T) {
	data := "header\r\n90210,CA,34.0901\r\n\r\n10001,NY,40.7506,-73.9972,New York,New York\r\n"
	store, err := LoadReader(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	loc, err := store.Lookup("10001")
	require.NoError(t, err)
	assert.Equal(t, "New York", loc.State)
}

func TestParseLineQuotes(t *testing.T) {
	tests := []struct {
		name string
		line string
		city string
	}{
		{
			name: "quoted",
			line: `"90210","CA","34.0901","-118.4065","Beverly Hills","California"`,
			city: "Beverly Hills",
		},
		{
			name: "unquoted",
			line: `90210,CA,34.0901,-118.4065,Beverly Hills,California`,
			city: "Beverly Hills",
		},
		{
			name: "leading quote only",
			line: `90210,CA,34.0901,-118.4065,"Beverly Hills,California`,
			city: `"Beverly Hills`,
		},
		{
			name: "lone quote",
			line: `90210,CA,34.0901,-118.4065,",California`,
			city: `"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := ParseLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.city, loc.City)
		})
	}
}

func TestParseLineCommaInsideQuotes(t *testing.T) {
	// A comma inside quotes still ends the field.
	loc, ok := ParseLine(`"20001","DC","38.9","-77.0","Washington, D.C.","District of Columbia"`)
	require.True(t, ok)
	assert.Equal(t, `"Washington`, loc.City)
	assert.Equal(t, ` D.C."`, loc.State)
}

func TestParseLineTooFewFields(t *testing.T) {
	_, ok := ParseLine("90210,CA,34.0901")
	assert.False(t, ok)
}

func TestEachFileOrder(t *testing.T) {
	store, err := LoadReader(strings.NewReader(testDataset))
	require.NoError(t, err)

	var codes []string
	require.NoError(t, store.Each(func(loc Location) error {
		codes = append(codes, loc.PostalCode)
		return nil
	}))
	assert.Equal(t, []string{"90210", "10001", "73301"}, codes)

	stop := errors.New("stop")
	calls := 0
	err = store.Each(func(Location) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
