package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedFetcher wraps a Fetcher so requests to the upstream never
// exceed a fixed rate.
type RateLimitedFetcher struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows rps requests per second (fractional values
// allowed) with bursts of up to burst requests.
func NewRateLimitedFetcher(fetcher Fetcher, rps float64, burst int) *RateLimitedFetcher {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Get waits for the limiter, then forwards to the wrapped fetcher.
func (r *RateLimitedFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
	}
	return r.fetcher.Get(ctx, url)
}

var _ Fetcher = (*RateLimitedFetcher)(nil)
