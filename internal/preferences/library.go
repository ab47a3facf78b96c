// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package preferences

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// historyLimit bounds the view history to the most recent entries.
const historyLimit = 50

// Favorites is the user's favorited movie set, most recent first.
// Safe for concurrent use.
type Favorites struct {
	mu  sync.RWMutex
	ids []int
}

// NewFavorites creates an empty favorites set.
func NewFavorites() *Favorites {
	return &Favorites{}
}

// Toggle adds the movie when absent and removes it when present.
// Returns true when the movie ended up favorited.
func (f *Favorites) Toggle(movieID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, id := range f.ids {
		if id == movieID {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return false
		}
	}
	f.ids = append([]int{movieID}, f.ids...)
	return true
}

// Contains reports whether the movie is favorited.
func (f *Favorites) Contains(movieID int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, id := range f.ids {
		if id == movieID {
			return true
		}
	}
	return false
}

// List returns the favorited movie IDs, most recent first.
func (f *Favorites) List() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]int, len(f.ids))
	copy(out, f.ids)
	return out
}

// Clear removes all favorites.
func (f *Favorites) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = nil
}

// MarshalSnapshot serializes the favorites set for persistence.
func (f *Favorites) MarshalSnapshot() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return json.Marshal(f.ids)
}

// RestoreSnapshot replaces the favorites set from a persisted snapshot.
func (f *Favorites) RestoreSnapshot(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("unmarshal favorites snapshot: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = ids
	return nil
}

// HistoryEntry records one viewed movie.
type HistoryEntry struct {
	MovieID   int       `json:"movie_id"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the bounded view history, most recent first. Re-viewing a
// movie moves it to the front instead of duplicating it. Safe for
// concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add records a view at the front, deduplicating and trimming to the
// history limit.
func (h *History) Add(movieID int, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := make([]HistoryEntry, 0, len(h.entries)+1)
	kept = append(kept, HistoryEntry{MovieID: movieID, Timestamp: at})
	for _, e := range h.entries {
		if e.MovieID != movieID {
			kept = append(kept, e)
		}
	}
	if len(kept) > historyLimit {
		kept = kept[:historyLimit]
	}
	h.entries = kept
}

// RecentlyViewed returns up to limit movie IDs, most recent first.
func (h *History) RecentlyViewed(limit int) []int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	ids := make([]int, 0, limit)
	for _, e := range h.entries[:limit] {
		ids = append(ids, e.MovieID)
	}
	return ids
}

// Clear removes all history entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// MarshalSnapshot serializes the history for persistence.
func (h *History) MarshalSnapshot() ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return json.Marshal(h.entries)
}

// RestoreSnapshot replaces the history from a persisted snapshot.
func (h *History) RestoreSnapshot(data []byte) error {
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("unmarshal history snapshot: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}
	h.entries = entries
	return nil
}

// Profile holds the user's demographic and language settings. Persisted as
// one snapshot; a missing snapshot means the zero value.
type Profile struct {
	// Age in years; zero means unset (no content policy applied).
	Age int `json:"age,omitempty"`

	// Languages are preferred original languages, most preferred first.
	Languages []string `json:"languages,omitempty"`

	// OnboardingDone records whether the onboarding flow completed.
	OnboardingDone bool `json:"onboarding_done,omitempty"`
}
