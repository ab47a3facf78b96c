// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/events"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/mood"
	"github.com/tomtom215/cinemood/internal/recommend"
	"github.com/tomtom215/cinemood/internal/store"
)

// maxRequestBody bounds request body reads.
const maxRequestBody = 1 << 20

// Catalog is the full catalog surface the handlers consume. Implemented
// by catalog.Client and catalog.BreakerClient; mocked in tests.
type Catalog interface {
	catalog.Searcher
	SearchMovies(ctx context.Context, query string, page int) (*catalog.MovieResponse, error)
	Trending(ctx context.Context, window string) (*catalog.MovieResponse, error)
	PopularMovies(ctx context.Context, page int) (*catalog.MovieResponse, error)
	DiscoverByYearRange(ctx context.Context, startYear, endYear int, language string, page int) (*catalog.MovieResponse, error)
	MovieGenres(ctx context.Context) (*catalog.GenreList, error)
}

// SnapshotWriter is the slice of the store the handlers write directly.
// Ledger, favorites, and history snapshots flow through the event
// processor instead.
type SnapshotWriter interface {
	Write(key string, data []byte) error
}

// Handlers implements all HTTP endpoints.
type Handlers struct {
	catalog   Catalog
	engine    *recommend.Engine
	bank      *mood.QuestionBank
	questions []mood.Question
	bus       *events.Bus
	state     events.State
	session   *Session
	snaps     SnapshotWriter
	validate  *validator.Validate
}

// NewHandlers wires the handler dependencies.
func NewHandlers(
	cat Catalog,
	engine *recommend.Engine,
	bank *mood.QuestionBank,
	questions []mood.Question,
	bus *events.Bus,
	state events.State,
	session *Session,
	snaps SnapshotWriter,
) *Handlers {
	return &Handlers{
		catalog:   cat,
		engine:    engine,
		bank:      bank,
		questions: questions,
		bus:       bus,
		state:     state,
		session:   session,
		snaps:     snaps,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. The returned details are field-level messages suitable for
// the error envelope.
func (h *Handlers) decodeAndValidate(r *http.Request, dst any) (any, error) {
	body := io.LimitReader(r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			return details, fmt.Errorf("validation failed")
		}
		return nil, err
	}
	return nil, nil
}

// Health reports service liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// HealthLive is the liveness probe.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. The service is ready once wiring
// completed; catalog reachability is reported by the breaker metrics, not
// gated here.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ready"})
}

type scoreRequest struct {
	Answers []mood.PuzzleAnswer `json:"answers" validate:"required,min=1,dive"`
}

type scoreResponse struct {
	Mood   mood.ID     `json:"mood"`
	Vector mood.Vector `json:"vector"`
}

// MoodScore scores a puzzle answer sequence and persists the winning
// mood as the session's current mood.
func (h *Handlers) MoodScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req scoreRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}

	primary, vector, err := mood.Score(h.bank, req.Answers)
	if err != nil {
		var confErr *mood.ConfigurationError
		switch {
		case errors.Is(err, mood.ErrEmptyInput):
			rw.BadRequest("no answers to score")
		case errors.As(err, &confErr):
			rw.ValidationFailed("unknown question or option", map[string]any{
				"question_id": confErr.QuestionID,
				"option_id":   confErr.OptionID,
			})
		default:
			rw.InternalError("scoring failed")
		}
		return
	}

	h.persistMood(r.Context(), primary)
	rw.Success(scoreResponse{Mood: primary, Vector: vector})
}

// MoodQuestions returns the puzzle question bank served to clients.
func (h *Handlers) MoodQuestions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{"questions": h.questions})
}

// GetMood returns the persisted primary mood.
func (h *Handlers) GetMood(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	m, ok := h.session.Mood()
	if !ok {
		rw.NotFound("no mood recorded yet")
		return
	}
	rw.Success(map[string]mood.ID{"mood": m})
}

type putMoodRequest struct {
	Mood string `json:"mood" validate:"required"`
}

// PutMood sets the current mood directly, bypassing scoring.
func (h *Handlers) PutMood(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req putMoodRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}
	m, err := mood.Parse(req.Mood)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	h.persistMood(r.Context(), m)
	rw.Success(map[string]mood.ID{"mood": m})
}

// persistMood updates the session and writes the mood snapshot. A write
// failure is logged and counted, never fatal to the request.
func (h *Handlers) persistMood(ctx context.Context, m mood.ID) {
	h.session.SetMood(m)
	if err := h.snaps.Write(store.KeyMood, []byte(m)); err != nil {
		metrics.SnapshotWriteFailures.WithLabelValues(store.KeyMood).Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("mood snapshot write failed")
	}
}

// publish emits an interaction event, logging failures. The in-memory
// state is already updated by the time an event is published, so a
// publish failure costs durability, not correctness.
func (h *Handlers) publish(ctx context.Context, e *events.InteractionEvent) {
	if err := h.bus.Publish(e); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("type", e.Type).Msg("interaction event publish failed")
	}
}
