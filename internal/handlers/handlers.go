// Package handlers is the HTTP surface of the dashboard: the server-rendered
// index page, the weather/search JSON endpoints the front end polls, and
// health.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"skycast/internal/geo"
	"skycast/internal/provider"
	"skycast/internal/view"
	"skycast/internal/weather"
)

// Gazetteer defines the city-lookup operations handlers need.
type Gazetteer interface {
	SearchCities(query string, limit int) ([]geo.City, error)
	Ping() error
}

// Handlers holds dependencies for HTTP handlers. It owns the single UI
// state object; all mutation goes through the view reducer under the lock.
type Handlers struct {
	gaz       Gazetteer
	svc       *weather.Service
	opts      view.Options
	templates *template.Template
	debounce  *view.Debouncer

	mu    sync.Mutex
	state view.State
}

// New creates a Handlers instance. A nil gazetteer disables autocomplete
// but nothing else.
func New(gaz Gazetteer, svc *weather.Service, opts view.Options) *Handlers {
	tmpl, err := template.ParseGlob("templates/*.html")
	if err != nil {
		slog.Warn("failed to parse templates", "error", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = 600 * time.Millisecond
	}

	h := &Handlers{
		gaz:       gaz,
		svc:       svc,
		opts:      opts,
		templates: tmpl,
		state:     view.NewState(opts.DefaultCity),
	}
	h.debounce = view.NewDebouncer(opts.Debounce, h.fetchInBackground)
	return h
}

// RegisterRoutes mounts the JSON API.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.HandleWeather)
	r.Get("/search", h.HandleSearch)
	r.Post("/input", h.HandleInput)
	r.Post("/toggle/unit", h.HandleToggleUnit)
	r.Post("/toggle/window", h.HandleToggleWindow)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// HandleIndex renders the dashboard page from the current UI state.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	h.mu.Lock()
	model := view.Build(h.state, h.opts, time.Now())
	h.mu.Unlock()

	if h.templates == nil {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>skycast</title></head><body><h1>skycast</h1><p>templates not loaded</p></body></html>`)
		return
	}

	if err := h.templates.ExecuteTemplate(w, "index.html", model); err != nil {
		slog.Error("template error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleHealth reports service and gazetteer status.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.gaz != nil {
		if err := h.gaz.Ping(); err != nil {
			status = "degraded"
		}
	} else {
		status = "no_gazetteer"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleWeather resolves the location query, performs the fetch, applies
// the result to UI state and returns the render model.
//
// Resolution order: lat/lon pair (browser geolocation) over typed city over
// the last known city. A present-but-blank city is a validation notice, not
// a fetch.
func (h *Handlers) HandleWeather(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	city, cityGiven := queryParam(r, "city")

	var query string
	switch {
	case latStr != "" && lonStr != "":
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lat parameter"})
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lon parameter"})
			return
		}
		query = fmt.Sprintf("%.4f,%.4f", lat, lon)
	case cityGiven:
		if strings.TrimSpace(city) == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"notice": "Please search for city"})
			return
		}
		query = strings.TrimSpace(city)
	default:
		// Geolocation denied or never attempted: last known city, which
		// starts out as the configured default.
		h.mu.Lock()
		query = h.state.Query
		h.mu.Unlock()
	}

	bundle, seq, err := h.svc.Fetch(r.Context(), query)
	if errors.Is(err, weather.ErrEmptyQuery) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"notice": "Please search for city"})
		return
	}

	h.mu.Lock()
	h.state = view.Apply(h.state, view.SearchSubmitted{Query: query})
	h.state = view.Apply(h.state, view.FetchStarted{Seq: seq})
	status := http.StatusOK
	if err != nil {
		notice := "Failed to fetch weather"
		status = http.StatusBadGateway
		if errors.Is(err, provider.ErrCityNotFound) {
			notice = "City not found"
			status = http.StatusNotFound
		}
		h.state = view.Apply(h.state, view.FetchFailed{Seq: seq, Notice: notice})
	} else {
		h.state = view.Apply(h.state, view.FetchSucceeded{Seq: seq, Bundle: bundle})
	}
	model := view.Build(h.state, h.opts, time.Now())
	h.mu.Unlock()

	writeJSON(w, status, model)
}

// HandleInput records one keystroke of the search box. The fetch fires
// only after the input has been quiet for the debounce window; each
// keystroke supersedes the previous pending one.
func (h *Handlers) HandleInput(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.debounce.Trigger(city)
	w.WriteHeader(http.StatusAccepted)
}

// fetchInBackground performs a debounced fetch and applies the result to
// UI state. Sequence stamping in the reducer keeps a slow debounced fetch
// from overwriting a newer direct one.
func (h *Handlers) fetchInBackground(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bundle, seq, err := h.svc.Fetch(ctx, query)
	if errors.Is(err, weather.ErrEmptyQuery) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = view.Apply(h.state, view.SearchSubmitted{Query: query})
	h.state = view.Apply(h.state, view.FetchStarted{Seq: seq})
	if err != nil {
		notice := "Failed to fetch weather"
		if errors.Is(err, provider.ErrCityNotFound) {
			notice = "City not found"
		}
		h.state = view.Apply(h.state, view.FetchFailed{Seq: seq, Notice: notice})
		return
	}
	h.state = view.Apply(h.state, view.FetchSucceeded{Seq: seq, Bundle: bundle})
}

// HandleSearch performs city autocomplete against the gazetteer.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 2 || h.gaz == nil {
		writeJSON(w, http.StatusOK, []geo.City{})
		return
	}

	cities, err := h.gaz.SearchCities(q, 10)
	if err != nil {
		slog.Error("city search failed", "query", q, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	if cities == nil {
		cities = []geo.City{}
	}

	writeJSON(w, http.StatusOK, cities)
}

// HandleToggleUnit flips the Celsius/Fahrenheit flag and returns the
// re-rendered model.
func (h *Handlers) HandleToggleUnit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.state = view.Apply(h.state, view.UnitToggled{})
	model := view.Build(h.state, h.opts, time.Now())
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, model)
}

// HandleToggleWindow flips the 4-day/9-day forecast window flag and
// returns the re-rendered model.
func (h *Handlers) HandleToggleWindow(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.state = view.Apply(h.state, view.WindowToggled{})
	model := view.Build(h.state, h.opts, time.Now())
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, model)
}

func queryParam(r *http.Request, key string) (string, bool) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
