// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
)

// breakerName labels the TMDB circuit breaker in logs and metrics.
const breakerName = "tmdb-api"

// BreakerClient wraps Client with a circuit breaker so a degraded catalog
// fails fast instead of stacking up slow requests. The breaker uses real
// time for its recovery windows; unit tests should exercise the wrapped
// Client directly.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
}

// NewBreakerClient wraps a Client with circuit breaker protection.
// The circuit opens after a 60% failure rate over at least 10 requests,
// stays open for 2 minutes, and admits 3 trial requests when half-open.
func NewBreakerClient(client *Client) *BreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening catalog circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("catalog circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb}
}

// execute runs a catalog call through the circuit breaker, recording the
// outcome in metrics.
func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return result, nil
}

// castResult type-asserts a breaker result with error checking.
func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", result)
	}
	return typed, nil
}

// SearchByGenreAndFilters executes one discovery query through the breaker.
func (b *BreakerClient) SearchByGenreAndFilters(ctx context.Context, params QueryParams) (*MovieResponse, error) {
	return castResult[MovieResponse](b.execute(func() (any, error) {
		return b.client.SearchByGenreAndFilters(ctx, params)
	}))
}

// SearchMovies performs a free-text title search through the breaker.
func (b *BreakerClient) SearchMovies(ctx context.Context, query string, page int) (*MovieResponse, error) {
	return castResult[MovieResponse](b.execute(func() (any, error) {
		return b.client.SearchMovies(ctx, query, page)
	}))
}

// Trending returns the trending list through the breaker.
func (b *BreakerClient) Trending(ctx context.Context, window string) (*MovieResponse, error) {
	return castResult[MovieResponse](b.execute(func() (any, error) {
		return b.client.Trending(ctx, window)
	}))
}

// PopularMovies returns the popular list through the breaker.
func (b *BreakerClient) PopularMovies(ctx context.Context, page int) (*MovieResponse, error) {
	return castResult[MovieResponse](b.execute(func() (any, error) {
		return b.client.PopularMovies(ctx, page)
	}))
}

// DiscoverByYearRange returns decade-shelf results through the breaker.
func (b *BreakerClient) DiscoverByYearRange(ctx context.Context, startYear, endYear int, language string, page int) (*MovieResponse, error) {
	return castResult[MovieResponse](b.execute(func() (any, error) {
		return b.client.DiscoverByYearRange(ctx, startYear, endYear, language, page)
	}))
}

// MovieGenres returns the genre table through the breaker.
func (b *BreakerClient) MovieGenres(ctx context.Context) (*GenreList, error) {
	return castResult[GenreList](b.execute(func() (any, error) {
		return b.client.MovieGenres(ctx)
	}))
}

// stateToString converts a circuit breaker state to a string label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// stateToFloat converts a circuit breaker state to a metric value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
