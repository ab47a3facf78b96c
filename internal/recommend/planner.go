// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"strconv"
	"strings"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/mood"
)

// Content policy thresholds. Two tiers only: this is a coarse rating cap,
// not a certification lookup.
const (
	adultAge = 17
	youngAge = 13

	strictRatingCeiling  = 6.0
	relaxedRatingCeiling = 7.5
)

// RatingCeiling returns the vote-average cap for the given age and whether
// a cap applies at all. Ages of adultAge and above (and the zero value,
// meaning unset) carry no cap.
func RatingCeiling(age int) (float64, bool) {
	if age <= 0 || age >= adultAge {
		return 0, false
	}
	if age < youngAge {
		return strictRatingCeiling, true
	}
	return relaxedRatingCeiling, true
}

// PlanOptions carries the per-request inputs that personalize a plan.
type PlanOptions struct {
	// Languages lists preferred original languages, most preferred first.
	// Only the first entry is used per plan; multi-language fan-out is the
	// caller's responsibility.
	Languages []string

	// Age in years. Zero means unset and disables the content policy.
	Age int

	// PreferredGenres biases the genre filter. The preference is unioned
	// into the mood's genre set, never substituted for it.
	PreferredGenres []int
}

// Planner translates a (mood, options) tuple into catalog query plans. It
// performs no I/O; every call is a pure mapping.
type Planner struct{}

// Plan builds the query plans for one recommendation pass. The result is a
// list to allow fan-out, but is currently always length 1.
func (Planner) Plan(m mood.ID, opts PlanOptions) ([]catalog.QueryParams, error) {
	genres, err := GenresForMood(m)
	if err != nil {
		return nil, err
	}
	genres = unionGenres(genres, opts.PreferredGenres)

	params := catalog.QueryParams{
		{Key: catalog.ParamWithGenres, Value: joinGenres(genres)},
		{Key: catalog.ParamSortBy, Value: catalog.SortPopularityDesc},
	}
	if len(opts.Languages) > 0 && opts.Languages[0] != "" {
		params = params.Set(catalog.ParamOriginalLanguage, opts.Languages[0])
	}
	if ceiling, ok := RatingCeiling(opts.Age); ok {
		params = params.Set(catalog.ParamVoteAverageLTE, formatRating(ceiling))
	}

	return []catalog.QueryParams{params}, nil
}

// unionGenres appends extras not already present, preserving the base
// order so the mood signal always leads the filter.
func unionGenres(base, extra []int) []int {
	seen := make(map[int]struct{}, len(base)+len(extra))
	out := make([]int, 0, len(base)+len(extra))
	for _, g := range base {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	for _, g := range extra {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

func joinGenres(genres []int) string {
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
