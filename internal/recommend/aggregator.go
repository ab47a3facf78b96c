// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/metrics"
	"github.com/tomtom215/cinemood/internal/mood"
)

// Match score weighting. The score is advisory and must be reproducible
// from (movie, mood) alone.
const (
	genreWeight  = 0.6
	ratingWeight = 0.4
)

// RankedMovie pairs a catalog movie with its match score. Derived per
// pass, never persisted.
type RankedMovie struct {
	Movie      catalog.Movie `json:"movie"`
	MatchScore int           `json:"match_score"`
}

// Policy is the client-side content policy applied after merge. The
// upstream rating filter is best-effort, so the ceiling is re-checked
// here. Filtering is fail-closed: an empty compliant result is preferred
// to relaxing the ceiling.
type Policy struct {
	Ceiling float64
	Active  bool
}

// PolicyForAge derives the content policy from a profile age.
func PolicyForAge(age int) Policy {
	ceiling, ok := RatingCeiling(age)
	return Policy{Ceiling: ceiling, Active: ok}
}

// Aggregator executes query plans against the catalog and folds the
// responses into one ranked, deduplicated, policy-compliant list.
type Aggregator struct {
	client catalog.Searcher
}

// NewAggregator builds an aggregator over a catalog searcher.
func NewAggregator(client catalog.Searcher) *Aggregator {
	return &Aggregator{client: client}
}

// Execute runs every plan, merges the pages, and returns up to limit
// ranked movies (limit <= 0 means unbounded). Plans run concurrently, but
// results are always folded in plan order so the output is reproducible.
//
// A failed plan contributes an empty page and the pass continues; only
// when every plan fails is ErrUpstreamUnavailable returned, so callers
// can tell "no matches" apart from "catalog down".
func (a *Aggregator) Execute(ctx context.Context, m mood.ID, plans []catalog.QueryParams, policy Policy, limit int) ([]RankedMovie, error) {
	target, err := GenresForMood(m)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return []RankedMovie{}, nil
	}

	pages := make([]*catalog.MovieResponse, len(plans))
	errs := make([]error, len(plans))

	var wg sync.WaitGroup
	for i, plan := range plans {
		wg.Add(1)
		go func(i int, plan catalog.QueryParams) {
			defer wg.Done()
			pages[i], errs[i] = a.client.SearchByGenreAndFilters(ctx, plan)
		}(i, plan)
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		pages[i] = nil
		metrics.PlanFailures.Inc()
		logging.Ctx(ctx).Warn().Err(err).Int("plan", i).Msg("plan request failed, continuing with remaining plans")
	}
	if failed == len(plans) {
		return nil, ErrUpstreamUnavailable
	}

	movies := MergeAndFilter(pages, policy)

	ranked := make([]RankedMovie, len(movies))
	for i, mv := range movies {
		ranked[i] = RankedMovie{Movie: mv, MatchScore: MatchScore(mv, target)}
	}
	// Stable sort keeps arrival order as the tie-break, which is the
	// catalog's popularity order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// MergeAndFilter concatenates pages in order, deduplicates by movie ID
// keeping the first occurrence, and applies the content policy. It is
// idempotent: re-applying it to its own output returns the same list.
func MergeAndFilter(pages []*catalog.MovieResponse, policy Policy) []catalog.Movie {
	seen := make(map[int]struct{})
	var out []catalog.Movie
	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, mv := range page.Results {
			if _, dup := seen[mv.ID]; dup {
				continue
			}
			seen[mv.ID] = struct{}{}
			if policy.Active && mv.VoteAverage > policy.Ceiling {
				metrics.PolicyFiltered.Inc()
				continue
			}
			out = append(out, mv)
		}
	}
	if out == nil {
		out = []catalog.Movie{}
	}
	return out
}

// MatchScore computes the 0..100 advisory score for a movie against the
// mood's target genre set: genre overlap (as a fraction of the target
// set) carries 60%, the movie's vote average normalized to 0..100
// carries 40%.
func MatchScore(movie catalog.Movie, targetGenres []int) int {
	genrePart := 0.0
	if len(targetGenres) > 0 {
		target := make(map[int]struct{}, len(targetGenres))
		for _, g := range targetGenres {
			target[g] = struct{}{}
		}
		overlap := 0
		for _, g := range movie.GenreIDs {
			if _, ok := target[g]; ok {
				overlap++
				delete(target, g)
			}
		}
		genrePart = float64(overlap) / float64(len(targetGenres))
	}

	ratingPart := movie.VoteAverage / 10.0

	score := int(math.Round(100 * (genreWeight*genrePart + ratingWeight*ratingPart)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
