// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points a Client at a test server with fast limits.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:     server.URL,
		BearerToken: "test-token",
		Timeout:     2 * time.Second,
		RateLimit:   1000,
		RateBurst:   1000,
	})
}

func TestClient_SearchByGenreAndFilters(t *testing.T) {
	var gotPath, gotQuery, gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 42, "title": "The Answer", "vote_average": 8.1, "genre_ids": [35, 10751]},
				{"id": 7, "title": "Lucky Seven", "vote_average": 6.4, "genre_ids": [18]}
			],
			"total_pages": 3,
			"total_results": 41
		}`))
	})

	params := QueryParams{
		{Key: ParamWithGenres, Value: "35,10751"},
		{Key: ParamSortBy, Value: SortPopularityDesc},
	}

	page, err := client.SearchByGenreAndFilters(context.Background(), params)
	if err != nil {
		t.Fatalf("SearchByGenreAndFilters() error = %v", err)
	}

	if gotPath != "/discover/movie" {
		t.Errorf("path = %q, want /discover/movie", gotPath)
	}
	if gotQuery != "with_genres=35%2C10751&sort_by=popularity.desc" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(page.Results) != 2 || page.Results[0].ID != 42 {
		t.Errorf("unexpected results: %+v", page.Results)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestClient_MalformedResults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"results": [{"title": "No Identity"}]}`},
		{"missing title", `{"results": [{"id": 9}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SearchByGenreAndFilters(context.Background(), nil)

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error = %v, want *ParseError", err)
			}
		})
	}
}

func TestClient_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status_message": "Invalid API key"}`, http.StatusUnauthorized)
	})

	_, err := client.SearchByGenreAndFilters(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestClient_SearchMovies(t *testing.T) {
	var gotQuery string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results": [{"id": 1, "title": "Found"}]}`))
	})

	page, err := client.SearchMovies(context.Background(), "space odyssey", 2)
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}
	if gotQuery != "query=space+odyssey&page=2" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(page.Results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(page.Results))
	}
}

func TestClient_DiscoverByYearRange(t *testing.T) {
	var gotQuery string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	t.Run("range", func(t *testing.T) {
		_, err := client.DiscoverByYearRange(context.Background(), 1990, 1999, "en", 1)
		if err != nil {
			t.Fatalf("DiscoverByYearRange() error = %v", err)
		}
		want := "sort_by=popularity.desc&vote_average.gte=6.0&vote_count.gte=100" +
			"&include_adult=false&page=1&primary_release_date.gte=1990-01-01" +
			"&primary_release_date.lte=1999-12-31&with_original_language=en"
		if gotQuery != want {
			t.Errorf("query = %q\nwant    %q", gotQuery, want)
		}
	})

	t.Run("single year", func(t *testing.T) {
		_, err := client.DiscoverByYearRange(context.Background(), 2026, 2026, "", 1)
		if err != nil {
			t.Fatalf("DiscoverByYearRange() error = %v", err)
		}
		want := "sort_by=popularity.desc&vote_average.gte=6.0&vote_count.gte=100" +
			"&include_adult=false&page=1&primary_release_year=2026"
		if gotQuery != want {
			t.Errorf("query = %q\nwant    %q", gotQuery, want)
		}
	})
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		size string
		want string
	}{
		{"default size", "/abc.jpg", "", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"explicit size", "/abc.jpg", "original", "https://image.tmdb.org/t/p/original/abc.jpg"},
		{"empty path", "", "w500", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL(tt.path, tt.size); got != tt.want {
				t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.path, tt.size, got, tt.want)
			}
		})
	}
}
