package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"skycast/internal/weather"
)

// WeatherAPI is the forecast-capable provider (api.weatherapi.com). One GET
// against /forecast.json returns current conditions plus hourly-resolved
// forecast days, so a single call feeds the whole dashboard.
type WeatherAPI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeatherAPI creates a WeatherAPI provider. baseURL is configurable so
// tests can point it at a local server; empty means the public endpoint.
func NewWeatherAPI(apiKey, baseURL string) *WeatherAPI {
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	return &WeatherAPI{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name.
func (p *WeatherAPI) Name() string {
	return "WeatherAPI"
}

// errCodeNoMatch is WeatherAPI's "no matching location found" error code.
const errCodeNoMatch = 1006

// errorResponse is WeatherAPI's error envelope.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// forecastResponse mirrors the subset of the /forecast.json payload the
// dashboard consumes.
type forecastResponse struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		TempF      float64 `json:"temp_f"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		WindDegree int     `json:"wind_degree"`
		WindDir    string  `json:"wind_dir"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64 `json:"maxtemp_c"`
				MinTempC          float64 `json:"mintemp_c"`
				MaxTempF          float64 `json:"maxtemp_f"`
				MinTempF          float64 `json:"mintemp_f"`
				DailyChanceOfRain int     `json:"daily_chance_of_rain"`
				DailyChanceOfSnow int     `json:"daily_chance_of_snow"`
				Condition         struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				Time      string  `json:"time"`
				TempC     float64 `json:"temp_c"`
				TempF     float64 `json:"temp_f"`
				Condition struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Fetch issues a single forecast request for the query.
func (p *WeatherAPI) Fetch(ctx context.Context, query string, days int) (weather.Bundle, error) {
	endpoint := fmt.Sprintf("%s/forecast.json", p.baseURL)
	params := url.Values{}
	params.Add("key", p.apiKey)
	params.Add("q", query)
	params.Add("days", fmt.Sprintf("%d", days))
	params.Add("aqi", "no")
	params.Add("alerts", "no")

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

	// WeatherAPI answers an unmatched location with 400 carrying error code
	// 1006; treat that the same as a plain 404. Other 400s (bad key, bad
	// parameters) are request problems, not a missing city.
	if resp.StatusCode == http.StatusNotFound {
		return weather.Bundle{}, ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if resp.StatusCode == http.StatusBadRequest &&
			json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Code == errCodeNoMatch {
			return weather.Bundle{}, ErrCityNotFound
		}
		return weather.Bundle{}, StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return weather.Bundle{}, fmt.Errorf("failed to parse response: %w", err)
	}

	bundle := weather.Bundle{
		Location: weather.Location{
			Name:    response.Location.Name,
			Region:  response.Location.Region,
			Country: response.Location.Country,
			Lat:     response.Location.Lat,
			Lon:     response.Location.Lon,
		},
		Current: weather.Snapshot{
			Condition:  response.Current.Condition.Text,
			TempC:      response.Current.TempC,
			TempF:      response.Current.TempF,
			FeelsC:     response.Current.FeelsLikeC,
			Humidity:   response.Current.Humidity,
			WindKph:    response.Current.WindKph,
			WindDegree: response.Current.WindDegree,
			WindDir:    response.Current.WindDir,
		},
		FetchedAt: time.Now(),
	}

	for _, day := range response.Forecast.ForecastDay {
		fd := weather.ForecastDay{
			Date:       day.Date,
			MinC:       day.Day.MinTempC,
			MaxC:       day.Day.MaxTempC,
			MinF:       day.Day.MinTempF,
			MaxF:       day.Day.MaxTempF,
			Condition:  day.Day.Condition.Text,
			RainChance: day.Day.DailyChanceOfRain,
			SnowChance: day.Day.DailyChanceOfSnow,
			Sunrise:    day.Astro.Sunrise,
			Sunset:     day.Astro.Sunset,
		}
		for _, hour := range day.Hour {
			fd.Hours = append(fd.Hours, weather.HourEntry{
				Time:      hour.Time,
				TempC:     hour.TempC,
				TempF:     hour.TempF,
				Condition: hour.Condition.Text,
			})
		}
		bundle.Days = append(bundle.Days, fd)
	}

	if len(bundle.Days) > 0 {
		first := bundle.Days[0]
		bundle.Current.MinC = first.MinC
		bundle.Current.MaxC = first.MaxC
	}

	return bundle, nil
}

var _ Provider = (*WeatherAPI)(nil)
