// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"fmt"
)

// Movie is a catalog item. It is treated as a read-only value object once
// received; identity is ID.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// MovieResponse is one page of catalog results.
type MovieResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is a catalog genre descriptor.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the catalog's genre table.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// ParseError indicates an upstream payload that decoded but failed shape
// validation. It is distinct from the recommendation error taxonomy: a
// ParseError means the catalog sent something we refuse to interpret.
type ParseError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog %s: malformed response: %s", e.Operation, e.Reason)
}

// validateMovies enforces the minimal movie shape: a positive identity and
// a non-empty title. Everything else is optional.
func validateMovies(operation string, movies []Movie) error {
	for i, m := range movies {
		if m.ID <= 0 {
			return &ParseError{Operation: operation, Reason: fmt.Sprintf("result %d has no id", i)}
		}
		if m.Title == "" {
			return &ParseError{Operation: operation, Reason: fmt.Sprintf("result %d (id %d) has no title", i, m.ID)}
		}
	}
	return nil
}

// Searcher is the primitive the recommendation pipeline consumes: one
// discovery query in, one page of results out. Implemented by Client and
// BreakerClient for production and by mocks in tests.
type Searcher interface {
	SearchByGenreAndFilters(ctx context.Context, params QueryParams) (*MovieResponse, error)
}
