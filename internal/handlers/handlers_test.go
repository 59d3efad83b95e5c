package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"skycast/internal/geo"
	"skycast/internal/provider"
	"skycast/internal/view"
	"skycast/internal/weather"
)

// stubProvider returns canned bundles keyed by query.
type stubProvider struct {
	bundles map[string]weather.Bundle
	calls   atomic.Int32
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Fetch(ctx context.Context, query string, days int) (weather.Bundle, error) {
	s.calls.Add(1)
	if b, ok := s.bundles[query]; ok {
		return b, nil
	}
	return weather.Bundle{}, provider.ErrCityNotFound
}

// stubGazetteer serves a fixed city list.
type stubGazetteer struct {
	cities []geo.City
	err    error
}

func (s *stubGazetteer) SearchCities(query string, limit int) ([]geo.City, error) {
	return s.cities, s.err
}

func (s *stubGazetteer) Ping() error { return s.err }

func newTestHandlers(p *stubProvider, gaz Gazetteer) *Handlers {
	svc := weather.NewService(p, 10, 0)
	return New(gaz, svc, view.Options{DefaultCity: "Mumbai", ExcludeToday: true})
}

func decodeModel(t *testing.T, rec *httptest.ResponseRecorder) view.Model {
	t.Helper()
	var m view.Model
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode model: %v", err)
	}
	return m
}

// TestHandleHealth tests the health states
func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name     string
		gaz      Gazetteer
		expected string
	}{
		{name: "healthy", gaz: &stubGazetteer{}, expected: "ok"},
		{name: "gazetteer down", gaz: &stubGazetteer{err: errors.New("closed")}, expected: "degraded"},
		{name: "no gazetteer", gaz: nil, expected: "no_gazetteer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(&stubProvider{}, tt.gaz)
			rec := httptest.NewRecorder()
			h.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["status"] != tt.expected {
				t.Errorf("status = %q, want %q", body["status"], tt.expected)
			}
		})
	}
}

// TestHandleWeather_City tests a successful city fetch end to end
func TestHandleWeather_City(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"Pune": {
			Location: weather.Location{Name: "Pune", Region: "Maharashtra"},
			Current:  weather.Snapshot{Condition: "Clear", TempC: 20.6, TempF: 69.08},
		},
	}}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?city=Pune", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := decodeModel(t, rec)
	if !m.HasData || m.Location != "Pune" {
		t.Errorf("model = %+v", m)
	}
	if m.Current.Temperature != "21°c" {
		t.Errorf("temperature = %q, want 21°c", m.Current.Temperature)
	}
	if m.Theme.Background != "#ffa600c7" {
		t.Errorf("clear theme not applied: %+v", m.Theme)
	}
	if m.Loading {
		t.Error("loading should be false after the response")
	}
}

// TestHandleWeather_Coordinates tests the geolocation path
func TestHandleWeather_Coordinates(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"18.9800,72.8300": {Location: weather.Location{Name: "Mumbai"}},
	}}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?lat=18.98&lon=72.83", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := decodeModel(t, rec)
	if m.Location != "Mumbai" {
		t.Errorf("location = %q, want Mumbai", m.Location)
	}
}

// TestHandleWeather_InvalidCoordinates tests lat/lon validation
func TestHandleWeather_InvalidCoordinates(t *testing.T) {
	h := newTestHandlers(&stubProvider{}, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?lat=abc&lon=72.83", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleWeather_DefaultCity tests that no location falls back to the
// configured default
func TestHandleWeather_DefaultCity(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"Mumbai": {Location: weather.Location{Name: "Mumbai"}},
	}}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := decodeModel(t, rec)
	if m.Location != "Mumbai" {
		t.Errorf("location = %q, want default city Mumbai", m.Location)
	}
}

// TestHandleWeather_BlankCity tests that a present-but-blank city is a
// validation notice and performs no fetch
func TestHandleWeather_BlankCity(t *testing.T) {
	p := &stubProvider{}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?city=%20%20", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if p.calls.Load() != 0 {
		t.Errorf("provider called %d times, want 0", p.calls.Load())
	}
}

// TestHandleWeather_CityNotFound tests that a miss clears prior data and
// raises one notice
func TestHandleWeather_CityNotFound(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"Pune": {Location: weather.Location{Name: "Pune"}},
	}}
	h := newTestHandlers(p, nil)

	// Seed a successful fetch first.
	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?city=Pune", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("seed fetch status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?city=Atlantis", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	m := decodeModel(t, rec)
	if m.HasData {
		t.Error("previous snapshot should be cleared after a miss")
	}
	if m.Notice != "City not found" {
		t.Errorf("notice = %q, want City not found", m.Notice)
	}
	if m.Loading {
		t.Error("loading should be false after the failure path")
	}
}

// TestHandleToggles tests that toggles re-render without refetching
func TestHandleToggles(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"Pune": {Current: weather.Snapshot{TempC: 20.6, TempF: 69.08}, Location: weather.Location{Name: "Pune"}},
	}}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleWeather(rec, httptest.NewRequest("GET", "/api/weather?city=Pune", nil))
	callsAfterFetch := p.calls.Load()

	rec = httptest.NewRecorder()
	h.HandleToggleUnit(rec, httptest.NewRequest("POST", "/api/toggle/unit", nil))
	m := decodeModel(t, rec)
	if m.UseCelsius {
		t.Error("unit toggle should flip to Fahrenheit")
	}
	if m.Current.Temperature != "69°f" {
		t.Errorf("temperature = %q, want 69°f", m.Current.Temperature)
	}

	rec = httptest.NewRecorder()
	h.HandleToggleWindow(rec, httptest.NewRequest("POST", "/api/toggle/window", nil))
	m = decodeModel(t, rec)
	if !m.LongWindow {
		t.Error("window toggle should flip to the long window")
	}

	if p.calls.Load() != callsAfterFetch {
		t.Errorf("toggles refetched: %d calls, want %d", p.calls.Load(), callsAfterFetch)
	}
}

// TestHandleInput_Debounced tests that a keystroke burst produces one
// fetch for the final input
func TestHandleInput_Debounced(t *testing.T) {
	p := &stubProvider{bundles: map[string]weather.Bundle{
		"Pune": {Location: weather.Location{Name: "Pune"}},
	}}
	svc := weather.NewService(p, 10, 0)
	h := New(nil, svc, view.Options{
		DefaultCity:  "Mumbai",
		ExcludeToday: true,
		Debounce:     20 * time.Millisecond,
	})

	for _, partial := range []string{"P", "Pu", "Pun", "Pune"} {
		rec := httptest.NewRecorder()
		h.HandleInput(rec, httptest.NewRequest("POST", "/api/input?city="+partial, nil))
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want 202", rec.Code)
		}
	}

	time.Sleep(120 * time.Millisecond)

	if p.calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", p.calls.Load())
	}

	h.mu.Lock()
	loc := h.state.Location
	h.mu.Unlock()
	if loc != "Pune" {
		t.Errorf("resolved location = %q, want Pune", loc)
	}
}

// TestHandleInput_Blank tests that empty input schedules nothing
func TestHandleInput_Blank(t *testing.T) {
	p := &stubProvider{}
	h := newTestHandlers(p, nil)

	rec := httptest.NewRecorder()
	h.HandleInput(rec, httptest.NewRequest("POST", "/api/input?city=", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}

	time.Sleep(50 * time.Millisecond)
	if p.calls.Load() != 0 {
		t.Errorf("provider called %d times, want 0", p.calls.Load())
	}
}

// TestHandleSearch tests autocomplete responses
func TestHandleSearch(t *testing.T) {
	gaz := &stubGazetteer{cities: []geo.City{{Name: "Mumbai", Country: "IN"}}}
	h := newTestHandlers(&stubProvider{}, gaz)

	rec := httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest("GET", "/api/search?q=Mum", nil))

	var cities []geo.City
	if err := json.NewDecoder(rec.Body).Decode(&cities); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(cities) != 1 || cities[0].Name != "Mumbai" {
		t.Errorf("cities = %+v", cities)
	}
}

// TestHandleSearch_ShortQuery tests that sub-2-char queries return an empty list
func TestHandleSearch_ShortQuery(t *testing.T) {
	gaz := &stubGazetteer{cities: []geo.City{{Name: "Mumbai"}}}
	h := newTestHandlers(&stubProvider{}, gaz)

	rec := httptest.NewRecorder()
	h.HandleSearch(rec, httptest.NewRequest("GET", "/api/search?q=M", nil))

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty list", body)
	}
}
