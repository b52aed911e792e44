package geo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// fieldCount is the number of columns in a dataset row:
// postalCode, stateAbbreviation, latitude, longitude, city, state
const fieldCount = 6

// ErrNotFound is returned by Lookup when no record matches the postal code.
var ErrNotFound = errors.New("postal code not found")

// FileError reports a dataset that could not be opened or read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Location is one row of the postal code dataset. All fields are kept as
// text exactly as they appear in the file (after quote stripping).
type Location struct {
	PostalCode        string
	StateAbbreviation string
	Latitude          string
	Longitude         string
	City              string
	State             string
}

// Store holds the dataset indexed by postal code. It is read-only once
// loaded and safe for concurrent lookups.
type Store struct {
	byCode map[string]Location
	order  []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byCode: make(map[string]Location)}
}

// Load reads the dataset at path. If the file cannot be read the returned
// store is empty but usable, and the error is a *FileError.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewStore(), &FileError{Path: path, Err: err}
	}
	defer f.Close()

	s, err := LoadReader(f)
	if err != nil {
		return s, &FileError{Path: path, Err: err}
	}
	return s, nil
}

// LoadReader reads a dataset from r. The first line is always discarded as
// a header. Rows with fewer than six fields are skipped. When a postal code
// appears more than once the first row wins.
func LoadReader(r io.Reader) (*Store, error) {
	s := NewStore()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		loc, ok := ParseLine(line)
		if !ok {
			log.Printf("geo: skipping line %d: expected %d fields", lineNo, fieldCount)
			continue
		}
		s.add(loc)
	}
	if err := scanner.Err(); err != nil {
		return s, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}

	return s, nil
}

func (s *Store) add(loc Location) {
	if _, exists := s.byCode[loc.PostalCode]; exists {
		return
	}
	s.byCode[loc.PostalCode] = loc
	s.order = append(s.order, loc.PostalCode)
}

// Lookup returns the record for postalCode or ErrNotFound.
func (s *Store) Lookup(postalCode string) (Location, error) {
	loc, ok := s.byCode[postalCode]
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrNotFound, postalCode)
	}
	return loc, nil
}

// Len returns the number of distinct postal codes in the store.
func (s *Store) Len() int {
	return len(s.byCode)
}

// Each calls fn for every record in file order, stopping at the first error.
func (s *Store) Each(fn func(Location) error) error {
	for _, code := range s.order {
		if err := fn(s.byCode[code]); err != nil {
			return err
		}
	}
	return nil
}

// ParseLine splits a dataset row on commas and strips symmetric double
// quotes from each field. Quoted fields may not contain commas or escaped
// quotes: a comma always ends the field, quoted or not.
func ParseLine(line string) (Location, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return Location{}, false
	}
	for i := range fields {
		fields[i] = stripQuotes(fields[i])
	}

	return Location{
		PostalCode:        fields[0],
		StateAbbreviation: fields[1],
		Latitude:          fields[2],
		Longitude:         fields[3],
		City:              fields[4],
		State:             fields[5],
	}, true
}

func stripQuotes(field string) string {
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		return field[1 : len(field)-1]
	}
	return field
}
