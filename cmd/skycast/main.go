package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"skycast/internal/config"
	"skycast/internal/geo"
	"skycast/internal/handlers"
	"skycast/internal/provider"
	"skycast/internal/view"
	"skycast/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	var gaz handlers.Gazetteer
	if store, err := geo.Open(cfg.GazetteerPath); err != nil {
		slog.Warn("gazetteer unavailable, city autocomplete disabled", "error", err)
	} else {
		defer store.Close()
		gaz = store
	}

	var prov provider.Provider
	switch cfg.Provider {
	case "openweathermap":
		prov = provider.NewOpenWeatherMap(cfg.APIKey, cfg.APIBaseURL)
	default:
		prov = provider.NewWeatherAPI(cfg.APIKey, cfg.APIBaseURL)
	}
	if cfg.RateRPS > 0 {
		prov = provider.NewRateLimited(prov, cfg.RateRPS, cfg.RateBurst)
		slog.Info("provider rate limiting enabled", "rps", cfg.RateRPS, "burst", cfg.RateBurst)
	}

	svc := weather.NewService(prov, cfg.ForecastDays, cfg.CacheTTL)

	h := handlers.New(gaz, svc, view.Options{
		DefaultCity:  cfg.DefaultCity,
		ExcludeToday: cfg.ExcludeToday,
		Debounce:     cfg.Debounce,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	fs := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	r.Get("/", h.HandleIndex)
	r.Get("/health", h.HandleHealth)
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("skycast started", "port", cfg.Port, "provider", prov.Name())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
