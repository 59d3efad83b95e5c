package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"skycast/internal/format"
	"skycast/internal/weather"
)

// OpenWeatherMap is the current-only provider. Temperatures arrive in
// Kelvin and are normalized to both display units here, so everything
// downstream of the fetch is provider-agnostic.
type OpenWeatherMap struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMap creates an OpenWeatherMap provider. baseURL is
// configurable for tests; empty means the public endpoint.
func NewOpenWeatherMap(apiKey, baseURL string) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name.
func (p *OpenWeatherMap) Name() string {
	return "OpenWeatherMap"
}

// Fetch issues a single current-conditions request. The returned bundle has
// no forecast days; the forecast panels stay empty with this provider.
func (p *OpenWeatherMap) Fetch(ctx context.Context, query string, days int) (weather.Bundle, error) {
	endpoint := fmt.Sprintf("%s/weather", p.baseURL)
	params := url.Values{}
	params.Add("q", query)
	params.Add("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return weather.Bundle{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return weather.Bundle{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Bundle{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return weather.Bundle{}, ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return weather.Bundle{}, StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var response struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Sys struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"` // m/s
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return weather.Bundle{}, fmt.Errorf("failed to parse response: %w", err)
	}

	condition := ""
	if len(response.Weather) > 0 {
		condition = response.Weather[0].Main
	}

	tempC := format.KelvinToCelsius(response.Main.Temp)

	return weather.Bundle{
		Location: weather.Location{
			Name:    response.Name,
			Country: response.Sys.Country,
			Lat:     response.Coord.Lat,
			Lon:     response.Coord.Lon,
		},
		Current: weather.Snapshot{
			Condition:  condition,
			TempC:      tempC,
			TempF:      format.CelsiusToFahrenheit(tempC),
			FeelsC:     format.KelvinToCelsius(response.Main.FeelsLike),
			MinC:       format.KelvinToCelsius(response.Main.TempMin),
			MaxC:       format.KelvinToCelsius(response.Main.TempMax),
			Humidity:   response.Main.Humidity,
			WindKph:    response.Wind.Speed * 3.6,
			WindDegree: response.Wind.Deg,
		},
		FetchedAt: time.Now(),
	}, nil
}

var _ Provider = (*OpenWeatherMap)(nil)
