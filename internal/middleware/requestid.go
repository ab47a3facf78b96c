// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package middleware provides HTTP middleware shared by the API router.
package middleware

import (
	"net/http"

	"github.com/tomtom215/cinemood/internal/logging"
)

// RequestID tags each request with a unique ID, honoring one supplied by
// an upstream proxy. The ID is echoed in the X-Request-ID response header
// and attached to the logging context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
