// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinemood/internal/catalog"
)

// respondCatalog writes a catalog response or maps the failure: shape
// violations are upstream faults reported as 502-adjacent 503, transport
// errors as 503.
func respondCatalog(rw *ResponseWriter, resp *catalog.MovieResponse, err error) {
	if err != nil {
		var parseErr *catalog.ParseError
		if errors.As(err, &parseErr) {
			rw.Error(http.StatusBadGateway, ErrCodeExternalServiceFail, parseErr.Error())
			return
		}
		rw.ServiceUnavailable("movie catalog is unavailable, try again")
		return
	}
	rw.Success(resp)
}

// MoviesSearch proxies free-text search.
func (h *Handlers) MoviesSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := r.URL.Query().Get("query")
	if query == "" {
		rw.BadRequest("query is required")
		return
	}
	page := queryInt(r, "page", 1)
	if page <= 0 {
		rw.BadRequest("page must be positive")
		return
	}

	resp, err := h.catalog.SearchMovies(r.Context(), query, page)
	respondCatalog(rw, resp, err)
}

// MoviesTrending returns the trending shelf. Window is day or week.
func (h *Handlers) MoviesTrending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	window := r.URL.Query().Get("window")
	if window == "" {
		window = "day"
	}
	if window != "day" && window != "week" {
		rw.BadRequest("window must be day or week")
		return
	}

	resp, err := h.catalog.Trending(r.Context(), window)
	respondCatalog(rw, resp, err)
}

// MoviesPopular returns the popular shelf.
func (h *Handlers) MoviesPopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	page := queryInt(r, "page", 1)
	if page <= 0 {
		rw.BadRequest("page must be positive")
		return
	}

	resp, err := h.catalog.PopularMovies(r.Context(), page)
	respondCatalog(rw, resp, err)
}

// MoviesByYear returns a decade shelf bounded by release years.
func (h *Handlers) MoviesByYear(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	start := queryInt(r, "start", 0)
	end := queryInt(r, "end", start)
	if start <= 0 {
		rw.BadRequest("start year is required")
		return
	}
	if end < start {
		rw.BadRequest("end year must not precede start year")
		return
	}
	page := queryInt(r, "page", 1)
	if page <= 0 {
		rw.BadRequest("page must be positive")
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		if langs := h.session.Profile().Languages; len(langs) > 0 {
			language = langs[0]
		}
	}

	resp, err := h.catalog.DiscoverByYearRange(r.Context(), start, end, language, page)
	respondCatalog(rw, resp, err)
}

// Genres returns the catalog's genre table.
func (h *Handlers) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	list, err := h.catalog.MovieGenres(r.Context())
	if err != nil {
		rw.ServiceUnavailable("movie catalog is unavailable, try again")
		return
	}
	rw.Success(list)
}
