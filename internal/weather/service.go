// Package weather holds the domain types and the fetch service sitting
// between the HTTP surface and the provider clients.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// ErrEmptyQuery marks an empty location query. The service performs no
// provider call for it; callers surface a validation notice instead of an
// error state.
var ErrEmptyQuery = errors.New("empty location query")

// Fetcher is the provider-side dependency of the service.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, query string, days int) (Bundle, error)
}

// Service performs weather fetches: it validates the query, stamps each
// request with a monotonically increasing sequence number, keeps the loading
// flag honest across every exit path, and consults the TTL cache.
type Service struct {
	provider Fetcher
	days     int
	cache    *Cache
	seq      atomic.Uint64
	inflight atomic.Int64
}

// NewService creates a fetch service over the given provider. days is the
// forecast horizon requested on every fetch; cacheTTL of zero disables the
// response cache.
func NewService(provider Fetcher, days int, cacheTTL time.Duration) *Service {
	return &Service{
		provider: provider,
		days:     days,
		cache:    NewCache(cacheTTL),
	}
}

// Loading reports whether any fetch is currently in flight. Overlapping
// fetches each count; the flag drops only when the last one finishes.
func (s *Service) Loading() bool {
	return s.inflight.Load() > 0
}

// Fetch resolves a location query to a weather bundle. The returned sequence
// number orders this fetch against concurrent ones; the view discards any
// result older than the newest it has accepted. An empty or whitespace query
// returns ErrEmptyQuery without touching the network or the loading flag.
func (s *Service) Fetch(ctx context.Context, query string) (Bundle, uint64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Bundle{}, 0, ErrEmptyQuery
	}

	seq := s.seq.Add(1)

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	key := strings.ToLower(query)
	if bundle, ok := s.cache.Get(key); ok {
		return bundle, seq, nil
	}

	bundle, err := s.provider.Fetch(ctx, query, s.days)
	if err != nil {
		slog.Error("weather fetch failed", "provider", s.provider.Name(), "query", query, "error", err)
		return Bundle{}, seq, fmt.Errorf("fetching weather for %q: %w", query, err)
	}

	s.cache.Set(key, bundle)
	return bundle, seq, nil
}
