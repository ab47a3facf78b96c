// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"net/url"
	"strings"
)

// Filter keys understood by TMDB's discover endpoint. Only the keys the
// planner emits are named here; QueryParams itself accepts any key.
const (
	ParamWithGenres       = "with_genres"
	ParamSortBy           = "sort_by"
	ParamOriginalLanguage = "with_original_language"
	ParamVoteAverageLTE   = "vote_average.lte"
	ParamVoteAverageGTE   = "vote_average.gte"
	ParamVoteCountGTE     = "vote_count.gte"
	ParamReleaseDateGTE   = "primary_release_date.gte"
	ParamReleaseDateLTE   = "primary_release_date.lte"
	ParamReleaseYear      = "primary_release_year"
	ParamIncludeAdult     = "include_adult"
	ParamPage             = "page"

	// SortPopularityDesc is the fixed sort key for recommendation plans.
	SortPopularityDesc = "popularity.desc"
)

// Param is one catalog filter key/value pair.
type Param struct {
	Key   string
	Value string
}

// QueryParams is an ordered set of catalog filter parameters. Order is
// preserved so encoded requests are reproducible, which keeps plan
// identity stable for logging and tests. Params are built fresh per
// request and never persisted.
type QueryParams []Param

// Set replaces the value for key in place, or appends the pair when the
// key is absent. Returns the (possibly reallocated) slice.
func (p QueryParams) Set(key, value string) QueryParams {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (p QueryParams) Get(key string) (string, bool) {
	for i := range p {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}
	return "", false
}

// Clone returns a copy that can be mutated independently.
func (p QueryParams) Clone() QueryParams {
	if p == nil {
		return nil
	}
	clone := make(QueryParams, len(p))
	copy(clone, p)
	return clone
}

// Encode renders the parameters as a URL query string in insertion order.
func (p QueryParams) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// String implements fmt.Stringer for log output.
func (p QueryParams) String() string {
	return p.Encode()
}
