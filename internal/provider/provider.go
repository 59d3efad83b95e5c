// Package provider holds the weather API clients. A Provider turns a
// location query into a weather.Bundle; which provider backs the dashboard
// is chosen by configuration, never chained.
package provider

import (
	"context"
	"errors"
	"fmt"

	"skycast/internal/weather"
)

// ErrCityNotFound is returned when the provider cannot match the query to a
// known location.
var ErrCityNotFound = errors.New("city not found")

// Provider fetches weather for a location query. The query is either a city
// name or a "lat,lon" pair; days is the forecast horizon requested from
// forecast-capable providers.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, days int) (weather.Bundle, error)
}

// StatusError represents a non-200 provider response.
type StatusError struct {
	Status int
	Body   string
}

func (e StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider returned status %d", e.Status)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}
