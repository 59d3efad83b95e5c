package provider

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"skycast/internal/weather"
)

// RateLimited wraps a Provider with a token-bucket rate limiter so rapid
// user actions cannot exhaust the provider's free-tier quota.
type RateLimited struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimited creates a rate limited wrapper around a provider.
// rps is the maximum requests per second allowed (can be fractional for
// less than 1 request per second); burst is the maximum burst size.
func NewRateLimited(provider Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// Fetch fetches weather data, respecting rate limits.
func (r *RateLimited) Fetch(ctx context.Context, query string, days int) (weather.Bundle, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Bundle{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Fetch(ctx, query, days)
}

// Name returns the provider name.
func (r *RateLimited) Name() string {
	return r.name
}

var _ Provider = (*RateLimited)(nil)
