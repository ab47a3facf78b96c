// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package recommend turns a mood signal plus preference state into ranked
// movie recommendations and derived playlists. Planning and scoring are
// pure; the only I/O is the catalog requests issued by the aggregator.
package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/mood"
)

// Config bounds one engine's result sizes.
type Config struct {
	// DefaultLimit applies when a request does not specify a limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps any requested limit.
	MaxLimit int `koanf:"max_limit"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 50}
}

// Request is one recommendation pass's inputs.
type Request struct {
	Mood            mood.ID
	Languages       []string
	Age             int
	PreferredGenres []int
	Limit           int
}

// Engine is the recommendation facade: one call plans, executes, and
// ranks. It holds no per-user state; preference inputs arrive in the
// Request.
type Engine struct {
	planner   Planner
	agg       *Aggregator
	playlists *PlaylistBuilder
	cfg       Config
}

// NewEngine builds an engine over a catalog searcher.
func NewEngine(client catalog.Searcher, cfg Config) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultConfig().MaxLimit
	}
	return &Engine{
		agg:       NewAggregator(client),
		playlists: NewPlaylistBuilder(client),
		cfg:       cfg,
	}
}

// Recommend runs one recommendation pass. The error is
// ErrUpstreamUnavailable when every plan failed; an empty list with a nil
// error is a valid policy-respecting outcome.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]RankedMovie, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}

	plans, err := e.planner.Plan(req.Mood, PlanOptions{
		Languages:       req.Languages,
		Age:             req.Age,
		PreferredGenres: req.PreferredGenres,
	})
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	ranked, err := e.agg.Execute(ctx, req.Mood, plans, PolicyForAge(req.Age), limit)
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		metrics.RecommendationRequests.WithLabelValues("upstream_unavailable").Inc()
		return nil, err
	case err != nil:
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RecommendationRequests.WithLabelValues("ok").Inc()
	return ranked, nil
}

// Playlist generates the mood playlist. Best-effort; see PlaylistBuilder.
func (e *Engine) Playlist(ctx context.Context, m mood.ID, language string) Playlist {
	return e.playlists.Build(ctx, m, language)
}

// CustomPlaylist generates a playlist from an explicit genre set.
func (e *Engine) CustomPlaylist(ctx context.Context, name, description string, genreIDs []int, count int) Playlist {
	return e.playlists.BuildCustom(ctx, name, description, genreIDs, count)
}
