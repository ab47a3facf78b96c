// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/logging"
	"github.com/tomtom215/cinemood/internal/mood"
)

// runtimeEstimateMinutes is the fixed per-movie runtime estimate. The
// catalog's real runtime field is deliberately not consulted; total
// runtime is an approximation, always count * 120.
const runtimeEstimateMinutes = 120

const defaultCustomCount = 4

// Playlist is a short named selection of movies for one mood. Playlists
// are never updated in place; regenerating creates a new instance with a
// fresh ID.
type Playlist struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Movies              []catalog.Movie `json:"movies"`
	TotalRuntimeMinutes int             `json:"total_runtime_minutes"`
	Mood                string          `json:"mood"`
}

// Template is the static per-mood playlist shape.
type Template struct {
	Name        string
	Description string
	Count       int
}

var playlistTemplates = map[mood.ID]Template{
	mood.Happy:       {Name: "Feel-Good Marathon", Description: "Uplifting movies to brighten your day", Count: 4},
	mood.Sad:         {Name: "Emotional Journey", Description: "Deep, moving stories that touch the heart", Count: 3},
	mood.Excited:     {Name: "Action-Packed Night", Description: "High-octane thrills and adventures", Count: 4},
	mood.Calm:        {Name: "Peaceful Evening", Description: "Relaxing films for a quiet night", Count: 3},
	mood.Adventurous: {Name: "Epic Adventure Quest", Description: "Journey through fantastical worlds", Count: 4},
	mood.Romantic:    {Name: "Love Story Collection", Description: "Heartwarming tales of romance", Count: 3},
	mood.Thoughtful:  {Name: "Mind-Bending Marathon", Description: "Thought-provoking cinema", Count: 3},
	mood.Scared:      {Name: "Horror Night", Description: "Spine-chilling thrills", Count: 4},
}

// TemplateForMood returns the playlist template for a mood, falling back
// to the happy template for anything unmapped.
func TemplateForMood(id mood.ID) Template {
	if t, ok := playlistTemplates[id]; ok {
		return t
	}
	return playlistTemplates[mood.Happy]
}

// PlaylistBuilder assembles playlists from the mood-query path. Playlist
// generation is best-effort: upstream failure yields an empty playlist,
// never an error. Recommendations are the primary feature; playlists are
// a convenience on top of them.
type PlaylistBuilder struct {
	client  catalog.Searcher
	planner Planner
	agg     *Aggregator

	// now is swappable for deterministic playlist IDs in tests.
	now func() time.Time
}

// NewPlaylistBuilder builds a playlist builder over a catalog searcher.
func NewPlaylistBuilder(client catalog.Searcher) *PlaylistBuilder {
	return &PlaylistBuilder{
		client: client,
		agg:    NewAggregator(client),
		now:    time.Now,
	}
}

// Build generates a playlist for one mood. Genre personalization and age
// policy are intentionally absent on this path; the playlist reflects the
// mood alone. language may be empty.
func (b *PlaylistBuilder) Build(ctx context.Context, m mood.ID, language string) Playlist {
	tmpl := TemplateForMood(m)
	p := Playlist{
		ID:          b.playlistID(string(m)),
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Movies:      []catalog.Movie{},
		Mood:        string(m),
	}

	opts := PlanOptions{}
	if language != "" {
		opts.Languages = []string{language}
	}
	plans, err := b.planner.Plan(m, opts)
	if err == nil {
		var ranked []RankedMovie
		ranked, err = b.agg.Execute(ctx, m, plans, Policy{}, tmpl.Count)
		if err == nil {
			for _, r := range ranked {
				p.Movies = append(p.Movies, r.Movie)
			}
		}
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("mood", string(m)).Msg("playlist generation degraded to empty")
	}

	p.TotalRuntimeMinutes = len(p.Movies) * runtimeEstimateMinutes
	return p
}

// BuildCustom generates a playlist from an explicit genre set, bypassing
// the mood table. Results keep the catalog's popularity order; no match
// scoring applies without a mood signal.
func (b *PlaylistBuilder) BuildCustom(ctx context.Context, name, description string, genreIDs []int, count int) Playlist {
	if count <= 0 {
		count = defaultCustomCount
	}
	p := Playlist{
		ID:          b.playlistID("custom"),
		Name:        name,
		Description: description,
		Movies:      []catalog.Movie{},
		Mood:        "custom",
	}

	params := catalog.QueryParams{
		{Key: catalog.ParamWithGenres, Value: joinGenres(genreIDs)},
		{Key: catalog.ParamSortBy, Value: catalog.SortPopularityDesc},
	}
	resp, err := b.client.SearchByGenreAndFilters(ctx, params)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("playlist", name).Msg("custom playlist generation degraded to empty")
	} else {
		movies := resp.Results
		if len(movies) > count {
			movies = movies[:count]
		}
		p.Movies = append(p.Movies, movies...)
	}

	p.TotalRuntimeMinutes = len(p.Movies) * runtimeEstimateMinutes
	return p
}

func (b *PlaylistBuilder) playlistID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, b.now().UnixMilli())
}

// FormatRuntime renders minutes as "Xh Ym".
func FormatRuntime(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
