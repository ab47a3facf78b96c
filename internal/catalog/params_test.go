// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package catalog

import "testing"

func TestQueryParams_SetPreservesOrder(t *testing.T) {
	params := QueryParams{}
	params = params.Set(ParamWithGenres, "35")
	params = params.Set(ParamSortBy, SortPopularityDesc)
	params = params.Set(ParamOriginalLanguage, "en")

	// Overwriting an existing key keeps its position.
	params = params.Set(ParamWithGenres, "35,10751")

	want := "with_genres=35%2C10751&sort_by=popularity.desc&with_original_language=en"
	if got := params.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestQueryParams_Get(t *testing.T) {
	params := QueryParams{{Key: "a", Value: "1"}}

	if v, ok := params.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if _, ok := params.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestQueryParams_Clone(t *testing.T) {
	original := QueryParams{{Key: "a", Value: "1"}}
	clone := original.Clone()
	clone = clone.Set("a", "2")

	if v, _ := original.Get("a"); v != "1" {
		t.Errorf("original mutated through clone: a = %q", v)
	}
	if v, _ := clone.Get("a"); v != "2" {
		t.Errorf("clone a = %q, want 2", v)
	}
}

func TestQueryParams_EncodeEscapes(t *testing.T) {
	params := QueryParams{{Key: "query", Value: "román & júlia"}}

	want := "query=rom%C3%A1n+%26+j%C3%BAlia"
	if got := params.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}
