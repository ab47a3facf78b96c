// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinemood/internal/mood"
	"github.com/tomtom215/cinemood/internal/recommend"
)

// preferredGenreCount is how many ledger genres bias a recommendation
// plan.
const preferredGenreCount = 3

type recommendationsRequest struct {
	// Mood selects the recommendation axis directly. When empty, Answers
	// are scored instead; when both are empty, the session mood is used.
	Mood    string              `json:"mood,omitempty"`
	Answers []mood.PuzzleAnswer `json:"answers,omitempty" validate:"omitempty,dive"`

	// Languages and Age override the stored profile when set.
	Languages []string `json:"languages,omitempty"`
	Age       int      `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`

	Limit int `json:"limit,omitempty" validate:"omitempty,gte=1"`

	// UsePreferences controls whether the genre ledger biases the plan.
	// Defaults to true; explicit false yields a mood-only pass.
	UsePreferences *bool `json:"use_preferences,omitempty"`
}

type recommendationsResponse struct {
	Mood    mood.ID                 `json:"mood"`
	Results []recommend.RankedMovie `json:"results"`
}

// Recommendations runs a recommendation pass. The mood comes from the
// request, from scoring the supplied answers, or from the session, in
// that order.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendationsRequest
	if details, err := h.decodeAndValidate(r, &req); err != nil {
		rw.ValidationFailed(err.Error(), details)
		return
	}

	m, ok := h.resolveMood(rw, &req)
	if !ok {
		return
	}

	profile := h.session.Profile()
	languages := req.Languages
	if len(languages) == 0 {
		languages = profile.Languages
	}
	age := req.Age
	if age == 0 {
		age = profile.Age
	}

	var preferred []int
	if req.UsePreferences == nil || *req.UsePreferences {
		preferred = h.state.Ledger.TopGenres(preferredGenreCount)
	}

	ranked, err := h.engine.Recommend(r.Context(), recommend.Request{
		Mood:            m,
		Languages:       languages,
		Age:             age,
		PreferredGenres: preferred,
		Limit:           req.Limit,
	})
	switch {
	case errors.Is(err, recommend.ErrUpstreamUnavailable):
		rw.ServiceUnavailable("movie catalog is unavailable, try again")
		return
	case err != nil:
		rw.BadRequest(err.Error())
		return
	}

	rw.Success(recommendationsResponse{Mood: m, Results: ranked})
}

// resolveMood picks the mood for a pass and persists it when it came
// from fresh answers.
func (h *Handlers) resolveMood(rw *ResponseWriter, req *recommendationsRequest) (mood.ID, bool) {
	if req.Mood != "" {
		m, err := mood.Parse(req.Mood)
		if err != nil {
			rw.BadRequest(err.Error())
			return "", false
		}
		return m, true
	}
	if len(req.Answers) > 0 {
		m, _, err := mood.Score(h.bank, req.Answers)
		if err != nil {
			var confErr *mood.ConfigurationError
			if errors.As(err, &confErr) {
				rw.ValidationFailed("unknown question or option", map[string]any{
					"question_id": confErr.QuestionID,
					"option_id":   confErr.OptionID,
				})
			} else {
				rw.BadRequest(err.Error())
			}
			return "", false
		}
		h.persistMood(rw.r.Context(), m)
		return m, true
	}
	if m, ok := h.session.Mood(); ok {
		return m, true
	}
	rw.BadRequest("no mood available: supply a mood, answers, or score a quiz first")
	return "", false
}

// Playlist generates the playlist for the mood in the URL. Generation is
// best-effort; an empty playlist is a success.
func (h *Handlers) Playlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	m, err := mood.Parse(chi.URLParam(r, "mood"))
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		if langs := h.session.Profile().Languages; len(langs) > 0 {
			language = langs[0]
		}
	}

	rw.Success(h.engine.Playlist(r.Context(), m, language))
}
