// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package preferences holds the user's accumulated taste state: the genre
// weight ledger, the favorites set, the bounded view history, and the
// profile. All state is mutated one event at a time and persisted as whole
// snapshots by the caller; nothing in this package performs I/O.
package preferences

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// GenreLedger is a weighted-count ledger over genre IDs. Views and
// favorites are tallied separately; a favorite counts double a view when
// ranking. Counters never decrease except on Reset — removing a favorite
// does not decrement, by design (favorites only ever add weight).
//
// Safe for concurrent use; mutation is expected to come from a single
// writer (the interaction event router) while readers query TopGenres.
type GenreLedger struct {
	mu        sync.RWMutex
	viewed    map[int]int
	favorited map[int]int
}

// ledgerSnapshot is the persisted wire form of GenreLedger.
type ledgerSnapshot struct {
	Viewed    map[int]int `json:"viewed"`
	Favorited map[int]int `json:"favorited"`
}

// NewGenreLedger creates an empty ledger.
func NewGenreLedger() *GenreLedger {
	return &GenreLedger{
		viewed:    make(map[int]int),
		favorited: make(map[int]int),
	}
}

// TrackView increments the view counter for each genre ID in the input.
// Duplicate IDs increment multiple times; this is intentional frequency
// weighting, not a set operation.
func (l *GenreLedger) TrackView(genreIDs []int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, g := range genreIDs {
		l.viewed[g]++
	}
}

// TrackFavorite increments the favorite counter for each genre ID.
// Callers invoke this on add-to-favorite only, never on removal.
func (l *GenreLedger) TrackFavorite(genreIDs []int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, g := range genreIDs {
		l.favorited[g]++
	}
}

// TopGenres returns up to limit genre IDs ranked by combined score
// (viewed + 2*favorited), descending. Ties break by ascending genre ID for
// determinism.
func (l *GenreLedger) TopGenres(limit int) []int {
	if limit <= 0 {
		return nil
	}

	l.mu.RLock()
	combined := make(map[int]int, len(l.viewed)+len(l.favorited))
	for g, count := range l.viewed {
		combined[g] += count
	}
	for g, count := range l.favorited {
		combined[g] += 2 * count
	}
	l.mu.RUnlock()

	ids := make([]int, 0, len(combined))
	for g := range combined {
		ids = append(ids, g)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := combined[ids[i]], combined[ids[j]]
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

// CombinedScore returns viewed + 2*favorited for one genre ID.
func (l *GenreLedger) CombinedScore(genreID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.viewed[genreID] + 2*l.favorited[genreID]
}

// Reset clears both counters. Used only by the explicit clear-all-data
// action.
func (l *GenreLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewed = make(map[int]int)
	l.favorited = make(map[int]int)
}

// Len returns the number of distinct genres with any weight.
func (l *GenreLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	distinct := make(map[int]struct{}, len(l.viewed)+len(l.favorited))
	for g := range l.viewed {
		distinct[g] = struct{}{}
	}
	for g := range l.favorited {
		distinct[g] = struct{}{}
	}
	return len(distinct)
}

// MarshalSnapshot serializes the whole ledger for persistence. Partial or
// incremental persistence is deliberately unsupported.
func (l *GenreLedger) MarshalSnapshot() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return json.Marshal(ledgerSnapshot{Viewed: l.viewed, Favorited: l.favorited})
}

// RestoreSnapshot replaces the ledger's state from a persisted snapshot.
func (l *GenreLedger) RestoreSnapshot(data []byte) error {
	var snap ledgerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal ledger snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewed = snap.Viewed
	l.favorited = snap.Favorited
	if l.viewed == nil {
		l.viewed = make(map[int]int)
	}
	if l.favorited == nil {
		l.favorited = make(map[int]int)
	}
	return nil
}
