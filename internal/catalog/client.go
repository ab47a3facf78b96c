// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemood/internal/metrics"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// DefaultImageBaseURL is the TMDB image CDN root.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// maxErrorBodySize bounds how much of an error response body is read for
// diagnostics, preventing unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024

// Config holds catalog client configuration.
type Config struct {
	// BaseURL is the API root. Default: DefaultBaseURL.
	BaseURL string

	// BearerToken is the TMDB API read access token.
	BearerToken string

	// Timeout bounds each request. Default: 10s.
	Timeout time.Duration

	// RateLimit is the sustained requests-per-second ceiling applied
	// client-side. Default: 20 (half of TMDB's documented 40 req/s).
	RateLimit float64

	// RateBurst is the limiter burst size. Default: 10.
	RateBurst int
}

// Client is the direct TMDB HTTP client. It applies bearer authentication,
// client-side rate limiting, and response shape validation. Wrap it in a
// BreakerClient for production use. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

// NewClient creates a TMDB client from configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 10
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.BearerToken,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// getJSON performs a rate-limited GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, operation, path string, params QueryParams, out any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, path, params, out)
	metrics.ObserveCatalogRequest(operation, start, err)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, path string, params QueryParams, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of a response body
// for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		body = append(body, []byte("... (truncated)")...)
	}
	return body
}

// getMovies performs a GET returning a validated movie page.
func (c *Client) getMovies(ctx context.Context, operation, path string, params QueryParams) (*MovieResponse, error) {
	var page MovieResponse
	if err := c.getJSON(ctx, operation, path, params, &page); err != nil {
		return nil, err
	}
	if err := validateMovies(operation, page.Results); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchByGenreAndFilters executes one discovery query. This is the
// primitive the recommendation pipeline is built on; unknown filter keys
// are ignored server-side.
func (c *Client) SearchByGenreAndFilters(ctx context.Context, params QueryParams) (*MovieResponse, error) {
	return c.getMovies(ctx, "discover", "/discover/movie", params)
}

// SearchMovies performs a free-text title search.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MovieResponse, error) {
	if page < 1 {
		page = 1
	}
	params := QueryParams{
		{Key: "query", Value: query},
		{Key: ParamPage, Value: strconv.Itoa(page)},
	}
	return c.getMovies(ctx, "search", "/search/movie", params)
}

// Trending returns the trending movie list for the given window
// ("day" or "week").
func (c *Client) Trending(ctx context.Context, window string) (*MovieResponse, error) {
	if window != "day" && window != "week" {
		window = "day"
	}
	return c.getMovies(ctx, "trending", "/trending/movie/"+window, nil)
}

// PopularMovies returns the popular list page.
func (c *Client) PopularMovies(ctx context.Context, page int) (*MovieResponse, error) {
	if page < 1 {
		page = 1
	}
	params := QueryParams{{Key: ParamPage, Value: strconv.Itoa(page)}}
	return c.getMovies(ctx, "popular", "/movie/popular", params)
}

// DiscoverByYearRange returns well-voted movies whose primary release falls
// in [startYear, endYear], popularity-sorted. Used for the decade shelves.
func (c *Client) DiscoverByYearRange(ctx context.Context, startYear, endYear int, language string, page int) (*MovieResponse, error) {
	if page < 1 {
		page = 1
	}
	params := QueryParams{
		{Key: ParamSortBy, Value: SortPopularityDesc},
		{Key: ParamVoteAverageGTE, Value: "6.0"},
		{Key: ParamVoteCountGTE, Value: "100"},
		{Key: ParamIncludeAdult, Value: "false"},
		{Key: ParamPage, Value: strconv.Itoa(page)},
	}
	if startYear == endYear {
		params = params.Set(ParamReleaseYear, strconv.Itoa(startYear))
	} else {
		params = params.Set(ParamReleaseDateGTE, fmt.Sprintf("%d-01-01", startYear))
		params = params.Set(ParamReleaseDateLTE, fmt.Sprintf("%d-12-31", endYear))
	}
	if language != "" {
		params = params.Set(ParamOriginalLanguage, language)
	}
	return c.getMovies(ctx, "discover_by_year", "/discover/movie", params)
}

// MovieGenres returns the catalog's movie genre table.
func (c *Client) MovieGenres(ctx context.Context) (*GenreList, error) {
	var list GenreList
	if err := c.getJSON(ctx, "genres", "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ImageURL builds a CDN URL for a poster or backdrop path. Returns empty
// string for an empty path.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return DefaultImageBaseURL + "/" + size + path
}
