// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package catalog implements the TMDB v3 catalog client.
//
// The client is the only component that talks to the network. It owns
// request bounding (timeout, client-side rate limiting) and resilience
// (circuit breaker); callers above it treat failures uniformly.
//
// Responses are validated at this boundary: movies missing an identity or
// title fail with a *ParseError instead of flowing upward as zero values,
// so malformed upstream data cannot silently corrupt match-score
// computation. Unknown response fields are ignored, and servers are
// expected to ignore unknown filter keys.
//
// The shape of query parameters is fixed to TMDB's discovery/search
// semantics; the catalog is not pluggable.
package catalog
