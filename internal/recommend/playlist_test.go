// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/mood"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestPlaylistBuilder_Build(t *testing.T) {
	client := searcherFunc(func(_ context.Context, params catalog.QueryParams) (*catalog.MovieResponse, error) {
		if got, _ := params.Get(catalog.ParamWithGenres); got != "35,10751,10402" {
			t.Errorf("genre filter = %q, want the happy set", got)
		}
		return &catalog.MovieResponse{Results: []catalog.Movie{
			movie(1, "A", 7.0, 35),
			movie(2, "B", 6.5, 35),
			movie(3, "C", 8.0, 10751),
			movie(4, "D", 7.7, 10402),
			movie(5, "E", 5.0, 35),
			movie(6, "F", 6.0, 35),
		}}, nil
	})

	b := NewPlaylistBuilder(client)
	b.now = fixedClock(1700000000000)

	p := b.Build(context.Background(), mood.Happy, "")
	if p.ID != "happy-1700000000000" {
		t.Errorf("ID = %q, want mood plus creation timestamp", p.ID)
	}
	if p.Name != "Feel-Good Marathon" {
		t.Errorf("Name = %q, want %q", p.Name, "Feel-Good Marathon")
	}
	if p.Mood != "happy" {
		t.Errorf("Mood = %q, want %q", p.Mood, "happy")
	}
	if len(p.Movies) != 4 {
		t.Fatalf("got %d movies, want template count 4", len(p.Movies))
	}
	if want := len(p.Movies) * 120; p.TotalRuntimeMinutes != want {
		t.Errorf("TotalRuntimeMinutes = %d, want %d", p.TotalRuntimeMinutes, want)
	}
}

func TestPlaylistBuilder_FewerResultsThanTemplate(t *testing.T) {
	client := searcherFunc(func(context.Context, catalog.QueryParams) (*catalog.MovieResponse, error) {
		return &catalog.MovieResponse{Results: []catalog.Movie{movie(1, "Only", 7.0, 35)}}, nil
	})

	b := NewPlaylistBuilder(client)
	p := b.Build(context.Background(), mood.Happy, "")
	if len(p.Movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(p.Movies))
	}
	if p.TotalRuntimeMinutes != 120 {
		t.Errorf("TotalRuntimeMinutes = %d, want 120", p.TotalRuntimeMinutes)
	}
}

func TestPlaylistBuilder_UpstreamFailureIsEmptyPlaylist(t *testing.T) {
	client := searcherFunc(func(context.Context, catalog.QueryParams) (*catalog.MovieResponse, error) {
		return nil, errors.New("boom")
	})

	b := NewPlaylistBuilder(client)
	p := b.Build(context.Background(), mood.Scared, "")
	if len(p.Movies) != 0 {
		t.Errorf("Movies = %+v, want empty", p.Movies)
	}
	if p.TotalRuntimeMinutes != 0 {
		t.Errorf("TotalRuntimeMinutes = %d, want 0", p.TotalRuntimeMinutes)
	}
	if p.Name != "Horror Night" {
		t.Errorf("Name = %q, template metadata must survive failure", p.Name)
	}
}

func TestPlaylistBuilder_LanguagePassedThrough(t *testing.T) {
	var gotLang string
	client := searcherFunc(func(_ context.Context, params catalog.QueryParams) (*catalog.MovieResponse, error) {
		gotLang, _ = params.Get(catalog.ParamOriginalLanguage)
		return &catalog.MovieResponse{}, nil
	})

	b := NewPlaylistBuilder(client)
	b.Build(context.Background(), mood.Calm, "ko")
	if gotLang != "ko" {
		t.Errorf("original language = %q, want %q", gotLang, "ko")
	}
}

func TestPlaylistBuilder_BuildCustom(t *testing.T) {
	client := searcherFunc(func(_ context.Context, params catalog.QueryParams) (*catalog.MovieResponse, error) {
		if got, _ := params.Get(catalog.ParamWithGenres); got != "16,878" {
			t.Errorf("genre filter = %q, want %q", got, "16,878")
		}
		return &catalog.MovieResponse{Results: []catalog.Movie{
			movie(1, "A", 7.0, 16),
			movie(2, "B", 6.0, 878),
			movie(3, "C", 8.0, 16),
		}}, nil
	})

	b := NewPlaylistBuilder(client)
	b.now = fixedClock(42)

	p := b.BuildCustom(context.Background(), "Animated Sci-Fi", "Robots and toons", []int{16, 878}, 2)
	if p.ID != "custom-42" {
		t.Errorf("ID = %q, want custom prefix plus timestamp", p.ID)
	}
	if len(p.Movies) != 2 {
		t.Fatalf("got %d movies, want requested count 2", len(p.Movies))
	}
	// Custom playlists keep catalog order.
	if p.Movies[0].ID != 1 || p.Movies[1].ID != 2 {
		t.Errorf("order = [%d %d], want catalog order [1 2]", p.Movies[0].ID, p.Movies[1].ID)
	}
	if p.TotalRuntimeMinutes != 240 {
		t.Errorf("TotalRuntimeMinutes = %d, want 240", p.TotalRuntimeMinutes)
	}
}

func TestTemplateForMood_FallsBackToHappy(t *testing.T) {
	tmpl := TemplateForMood(mood.ID("unmapped"))
	if tmpl.Name != "Feel-Good Marathon" {
		t.Errorf("fallback template = %q, want the happy template", tmpl.Name)
	}
}

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{120, "2h 0m"},
		{135, "2h 15m"},
		{59, "0h 59m"},
	}
	for _, tt := range tests {
		if got := FormatRuntime(tt.minutes); got != tt.want {
			t.Errorf("FormatRuntime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
