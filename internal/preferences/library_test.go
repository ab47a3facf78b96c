// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package preferences

import (
	"reflect"
	"testing"
	"time"
)

func TestFavorites_ToggleSemantics(t *testing.T) {
	f := NewFavorites()

	if !f.Toggle(10) {
		t.Error("first toggle should favorite")
	}
	if !f.Toggle(20) {
		t.Error("first toggle should favorite")
	}
	if !f.Contains(10) || !f.Contains(20) {
		t.Error("both movies should be favorited")
	}

	// Most recent first.
	if got := f.List(); !reflect.DeepEqual(got, []int{20, 10}) {
		t.Errorf("List() = %v, want [20 10]", got)
	}

	if f.Toggle(10) {
		t.Error("second toggle should unfavorite")
	}
	if f.Contains(10) {
		t.Error("movie 10 should be removed")
	}
	if got := f.List(); !reflect.DeepEqual(got, []int{20}) {
		t.Errorf("List() = %v, want [20]", got)
	}
}

func TestFavorites_Clear(t *testing.T) {
	f := NewFavorites()
	f.Toggle(1)
	f.Toggle(2)
	f.Clear()
	if got := f.List(); len(got) != 0 {
		t.Errorf("List() after Clear = %v", got)
	}
}

func TestFavorites_SnapshotRoundTrip(t *testing.T) {
	f := NewFavorites()
	f.Toggle(3)
	f.Toggle(7)

	data, err := f.MarshalSnapshot()
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}

	restored := NewFavorites()
	if err := restored.RestoreSnapshot(data); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if got := restored.List(); !reflect.DeepEqual(got, []int{7, 3}) {
		t.Errorf("restored = %v, want [7 3]", got)
	}
}

func TestHistory_AddDeduplicates(t *testing.T) {
	h := NewHistory()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	h.Add(1, base)
	h.Add(2, base.Add(time.Minute))
	h.Add(1, base.Add(2*time.Minute))

	got := h.RecentlyViewed(10)
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("RecentlyViewed = %v, want [1 2] (re-view moves to front)", got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory()
	base := time.Now()
	for i := 1; i <= historyLimit+10; i++ {
		h.Add(i, base.Add(time.Duration(i)*time.Second))
	}

	got := h.RecentlyViewed(historyLimit * 2)
	if len(got) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(got), historyLimit)
	}
	if got[0] != historyLimit+10 {
		t.Errorf("most recent = %d, want %d", got[0], historyLimit+10)
	}
}

func TestHistory_RecentlyViewedLimit(t *testing.T) {
	h := NewHistory()
	base := time.Now()
	for i := 1; i <= 5; i++ {
		h.Add(i, base.Add(time.Duration(i)*time.Second))
	}

	if got := h.RecentlyViewed(2); !reflect.DeepEqual(got, []int{5, 4}) {
		t.Errorf("RecentlyViewed(2) = %v, want [5 4]", got)
	}
	if got := h.RecentlyViewed(0); len(got) != 5 {
		t.Errorf("RecentlyViewed(0) = %v, want all entries", got)
	}
}

func TestHistory_SnapshotRoundTripSingleEntry(t *testing.T) {
	h := NewHistory()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	h.Add(42, at)

	data, err := h.MarshalSnapshot()
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}

	restored := NewHistory()
	if err := restored.RestoreSnapshot(data); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if got := restored.RecentlyViewed(1); !reflect.DeepEqual(got, []int{42}) {
		t.Errorf("restored = %v, want [42]", got)
	}
}
