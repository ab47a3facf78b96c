// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinemood/internal/middleware"
)

// RouterConfig tunes the global middleware stack.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitReqs   int
	RateLimitWindow time.Duration
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   100,
		RateLimitWindow: time.Minute,
	}
}

// NewRouter builds the chi router over the handlers.
func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.Prometheus)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/mood", func(r chi.Router) {
			r.Post("/score", h.MoodScore)
			r.Get("/questions", h.MoodQuestions)
			r.Get("/", h.GetMood)
			r.Put("/", h.PutMood)
		})

		r.Post("/recommendations", h.Recommendations)
		r.Get("/playlists/{mood}", h.Playlist)

		r.Route("/interactions", func(r chi.Router) {
			r.Post("/view", h.InteractionView)
			r.Post("/favorite", h.InteractionFavorite)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/genres", h.PreferenceGenres)
			r.Get("/favorites", h.Favorites)
			r.Get("/history", h.History)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.PutProfile)
			r.Delete("/", h.DeletePreferences)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", h.MoviesSearch)
			r.Get("/trending", h.MoviesTrending)
			r.Get("/popular", h.MoviesPopular)
			r.Get("/by-year", h.MoviesByYear)
		})

		r.Get("/genres", h.Genres)
	})

	return r
}
