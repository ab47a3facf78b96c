// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/preferences"
	"github.com/tomtom215/cinemood/internal/store"
)

// Snapshots is the slice of the store the processor needs.
type Snapshots interface {
	Save(key string, target store.Snapshotter) error
	Remove(key string) error
}

// State bundles the in-memory preference state the processor flushes.
// The request path mutates it; the processor only reads and persists.
type State struct {
	Ledger    *preferences.GenreLedger
	Favorites *preferences.Favorites
	History   *preferences.History
}

// ProcessorConfig tunes the event router.
type ProcessorConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultProcessorConfig returns production defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
	}
}

// Processor consumes interaction events and flushes the affected
// snapshots. Flush failures are retried with backoff and always counted;
// a persistence failure is a warning channel, never a silent drop.
type Processor struct {
	router *message.Router
	state  State
	snaps  Snapshots
}

// NewProcessor wires the event router over the bus.
func NewProcessor(cfg ProcessorConfig, bus *Bus, state State, snaps Snapshots, logger watermill.LoggerAdapter) (*Processor, error) {
	if logger == nil {
		logger = NewLoggerAdapter()
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	p := &Processor{router: router, state: state, snaps: snaps}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      2.0,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddNoPublisherHandler(
		"interaction-snapshots",
		TopicInteractions,
		bus.Subscriber(),
		p.handle,
	)

	return p, nil
}

// handle applies one interaction event. Decode failures are dropped after
// logging; retrying cannot fix a malformed payload. Flush failures are
// returned so the retry middleware re-delivers.
func (p *Processor) handle(msg *message.Message) error {
	e, err := UnmarshalInteractionEvent(msg.Payload)
	if err != nil {
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed interaction event")
		return nil
	}
	metrics.InteractionEvents.WithLabelValues(e.Type).Inc()

	switch e.Type {
	case TypeMovieViewed:
		err = errors.Join(
			p.flush(store.KeyLedger, p.state.Ledger),
			p.flush(store.KeyHistory, p.state.History),
		)
	case TypeMovieFavorited:
		err = errors.Join(
			p.flush(store.KeyLedger, p.state.Ledger),
			p.flush(store.KeyFavorites, p.state.Favorites),
		)
	case TypePreferencesReset:
		err = p.removeAll(store.KeyLedger, store.KeyMood, store.KeyFavorites, store.KeyHistory)
	}
	if err != nil {
		return err
	}

	metrics.LedgerGenres.Set(float64(p.state.Ledger.Len()))
	return nil
}

func (p *Processor) flush(key string, target store.Snapshotter) error {
	if err := p.snaps.Save(key, target); err != nil {
		metrics.SnapshotWriteFailures.WithLabelValues(key).Inc()
		logging.Warn().Err(err).Str("key", key).Msg("snapshot flush failed")
		return err
	}
	return nil
}

func (p *Processor) removeAll(keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := p.snaps.Remove(key); err != nil {
			metrics.SnapshotWriteFailures.WithLabelValues(key).Inc()
			logging.Warn().Err(err).Str("key", key).Msg("snapshot removal failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Serve runs the router until the context is canceled. Implements
// suture.Service.
func (p *Processor) Serve(ctx context.Context) error {
	return p.router.Run(ctx)
}

// Running closes when the router has started all handlers.
func (p *Processor) Running() chan struct{} {
	return p.router.Running()
}

// Close shuts the router down.
func (p *Processor) Close() error {
	return p.router.Close()
}

// String names the service in supervision logs.
func (p *Processor) String() string {
	return "event-processor"
}
