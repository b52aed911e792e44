package weather

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned by Resolve when the postal code is not
	// in the location index.
	ErrLocationNotFound = errors.New("location not found")

	// ErrMalformedResponse marks a body that is not valid JSON or lacks a
	// required field.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError is a failed request to the upstream service. StatusCode is
// zero for transport failures (DNS, TLS, connection, timeout) and holds the
// HTTP status when the server answered outside the 2xx range.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request failed because a deadline expired.
func (e *NetworkError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) && t.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ClientError reports a 4xx response.
func (e *NetworkError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// ServerError reports a 5xx response.
func (e *NetworkError) ServerError() bool {
	return e.StatusCode >= 500
}

func malformed(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, what, err)
}
