// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import "errors"

// ErrUpstreamUnavailable is returned when every plan in a recommendation
// pass failed against the catalog. Callers can distinguish it from an
// empty-but-successful result: an empty list with a nil error means no
// candidates survived filtering, not that the catalog is down. The caller
// decides whether to retry; the pipeline never retries internally.
var ErrUpstreamUnavailable = errors.New("catalog unavailable: all plans failed")
