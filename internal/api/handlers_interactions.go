// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemood/internal/events"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/preferences"
	"github.com/tomtom215/cinemood/internal/store"
)

const (
	defaultTopGenres   = 5
	defaultHistorySize = 20
)

type interactionRequest struct {
	MovieID  int   `json:"movie_id" validate:"required,gt=0"`
	GenreIDs []int `json:"genre_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// InteractionView tracks a movie view: genre frequencies and history are
// updated in memory, and an event carries the flush.
func (h *Handlers) InteractionView(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req interactionRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}

	h.state.Ledger.TrackView(req.GenreIDs)
	h.state.History.Add(req.MovieID, time.Now())

	e := events.NewInteractionEvent(events.TypeMovieViewed)
	e.MovieID = req.MovieID
	e.GenreIDs = req.GenreIDs
	h.publish(r.Context(), e)

	rw.Success(map[string]bool{"tracked": true})
}

// InteractionFavorite toggles a favorite. Adding weights the genre
// ledger; removing never decrements it, weights only ever accumulate.
func (h *Handlers) InteractionFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req interactionRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}

	added := h.state.Favorites.Toggle(req.MovieID)
	if added {
		h.state.Ledger.TrackFavorite(req.GenreIDs)
	}

	e := events.NewInteractionEvent(events.TypeMovieFavorited)
	e.MovieID = req.MovieID
	e.GenreIDs = req.GenreIDs
	e.Favorited = added
	h.publish(r.Context(), e)

	rw.Success(map[string]bool{"favorited": added})
}

// PreferenceGenres returns the top weighted genre ids.
func (h *Handlers) PreferenceGenres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit := queryInt(r, "limit", defaultTopGenres)
	if limit <= 0 {
		rw.BadRequest("limit must be positive")
		return
	}
	rw.Success(map[string][]int{"genres": h.state.Ledger.TopGenres(limit)})
}

// DeletePreferences clears all preference state: ledger, favorites,
// history, and the recorded mood. The reset event removes the persisted
// snapshots.
func (h *Handlers) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	h.state.Ledger.Reset()
	h.state.Favorites.Clear()
	h.state.History.Clear()
	h.session.ClearMood()

	h.publish(r.Context(), events.NewInteractionEvent(events.TypePreferencesReset))
	rw.NoContent()
}

// Favorites lists favorited movie ids, most recent first.
func (h *Handlers) Favorites(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string][]int{"movie_ids": h.state.Favorites.List()})
}

// History lists recently viewed movie ids, most recent first.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit := queryInt(r, "limit", defaultHistorySize)
	if limit <= 0 {
		rw.BadRequest("limit must be positive")
		return
	}
	rw.Success(map[string][]int{"movie_ids": h.state.History.RecentlyViewed(limit)})
}

// GetProfile returns the stored profile.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.session.Profile())
}

type profileRequest struct {
	Age            int      `json:"age" validate:"omitempty,gte=0,lte=130"`
	Languages      []string `json:"languages,omitempty" validate:"omitempty,dive,len=2"`
	OnboardingDone bool     `json:"onboarding_done"`
}

// PutProfile replaces the profile and persists it. Languages are ISO 639-1
// codes as the catalog expects.
func (h *Handlers) PutProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req profileRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}

	profile := preferences.Profile{
		Age:            req.Age,
		Languages:      req.Languages,
		OnboardingDone: req.OnboardingDone,
	}
	h.session.SetProfile(profile)

	data, err := json.Marshal(profile)
	if err == nil {
		err = h.snaps.Write(store.KeyProfile, data)
	}
	if err != nil {
		metrics.SnapshotWriteFailures.WithLabelValues(store.KeyProfile).Inc()
		logging.Ctx(r.Context()).Warn().Err(err).Msg("profile snapshot write failed")
	}

	rw.Success(profile)
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
