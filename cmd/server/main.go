// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Command server runs the Cinemood HTTP service: mood scoring, movie
// recommendations, playlists, and preference tracking backed by a local
// Badger snapshot store and the TMDB catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/api"
	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/config"
	"github.com/tomtom215/cinemood/internal/events"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/mood"
	"github.com/tomtom215/cinemood/internal/preferences"
	"github.com/tomtom215/cinemood/internal/recommend"
	"github.com/tomtom215/cinemood/internal/store"
	"github.com/tomtom215/cinemood/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Str("tmdb_base_url", cfg.TMDB.BaseURL).
		Msg("Configuration loaded")

	db, err := store.Open(store.Config{Dir: cfg.Store.Path, InMemory: cfg.Store.InMemory})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()

	state, session := restoreState(db)

	// The breaker wraps the rate-limited TMDB client so a flapping
	// upstream fails fast instead of queueing requests.
	client := catalog.NewBreakerClient(catalog.NewClient(catalog.Config{
		BaseURL:     cfg.TMDB.BaseURL,
		BearerToken: cfg.TMDB.BearerToken,
		Timeout:     cfg.TMDB.Timeout,
		RateLimit:   cfg.TMDB.RateLimit,
		RateBurst:   cfg.TMDB.RateBurst,
	}))

	engine := recommend.NewEngine(client, cfg.Recommend)

	bus := events.NewBus(nil)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	processor, err := events.NewProcessor(events.DefaultProcessorConfig(), bus, state, db, nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event processor")
	}

	bank := mood.DefaultQuestionBank()
	questions := mood.DefaultQuestions()
	if cfg.Mood.QuestionsPath != "" {
		bank, questions, err = config.LoadQuestions(cfg.Mood.QuestionsPath)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to load question bank override")
		}
		logging.Info().Str("path", cfg.Mood.QuestionsPath).Int("questions", len(questions)).
			Msg("Loaded question bank override")
	}

	handlers := api.NewHandlers(
		client,
		engine,
		bank,
		questions,
		bus,
		state,
		session,
		db,
	)
	router := api.NewRouter(handlers, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddEventService(processor)
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// restoreState rebuilds the in-memory preference state and session from
// persisted snapshots. Corrupt or missing snapshots fall back to empty
// defaults; the service always starts.
func restoreState(db *store.Store) (events.State, *api.Session) {
	state := events.State{
		Ledger:    preferences.NewGenreLedger(),
		Favorites: preferences.NewFavorites(),
		History:   preferences.NewHistory(),
	}
	if err := db.Load(store.KeyLedger, state.Ledger); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore genre ledger")
	}
	if err := db.Load(store.KeyFavorites, state.Favorites); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore favorites")
	}
	if err := db.Load(store.KeyHistory, state.History); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore viewing history")
	}

	var current mood.ID
	if data, err := db.Read(store.KeyMood); err == nil {
		m, parseErr := mood.Parse(string(data))
		if parseErr != nil {
			logging.Warn().Err(parseErr).Msg("Ignoring invalid mood snapshot")
		} else {
			current = m
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		logging.Warn().Err(err).Msg("Failed to read mood snapshot")
	}

	var profile preferences.Profile
	if data, err := db.Read(store.KeyProfile); err == nil {
		if jsonErr := json.Unmarshal(data, &profile); jsonErr != nil {
			logging.Warn().Err(jsonErr).Msg("Ignoring corrupt profile snapshot")
			profile = preferences.Profile{}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		logging.Warn().Err(err).Msg("Failed to read profile snapshot")
	}

	return state, api.NewSession(current, profile)
}
