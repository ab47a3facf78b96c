// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"testing"

	"github.com/tomtom215/cinemood/internal/catalog"
	"github.com/tomtom215/cinemood/internal/mood"
)

func singlePlan(t *testing.T, plans []catalog.QueryParams, err error) catalog.QueryParams {
	t.Helper()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("Plan returned %d plans, want 1", len(plans))
	}
	return plans[0]
}

func wantParam(t *testing.T, p catalog.QueryParams, key, want string) {
	t.Helper()
	got, ok := p.Get(key)
	if !ok {
		t.Fatalf("param %q missing in %s", key, p)
	}
	if got != want {
		t.Errorf("param %q = %q, want %q", key, got, want)
	}
}

func wantNoParam(t *testing.T, p catalog.QueryParams, key string) {
	t.Helper()
	if got, ok := p.Get(key); ok {
		t.Errorf("param %q = %q, want absent", key, got)
	}
}

func TestPlanner_MoodGenresAndSort(t *testing.T) {
	var planner Planner

	plans, err := planner.Plan(mood.Happy, PlanOptions{})
	p := singlePlan(t, plans, err)
	wantParam(t, p, catalog.ParamWithGenres, "35,10751,10402")
	wantParam(t, p, catalog.ParamSortBy, catalog.SortPopularityDesc)
	wantNoParam(t, p, catalog.ParamOriginalLanguage)
	wantNoParam(t, p, catalog.ParamVoteAverageLTE)
}

func TestPlanner_YoungAgeCapsRating(t *testing.T) {
	var planner Planner

	plans, err := planner.Plan(mood.Scared, PlanOptions{Age: 12})
	p := singlePlan(t, plans, err)
	wantParam(t, p, catalog.ParamWithGenres, "27,53")
	wantParam(t, p, catalog.ParamVoteAverageLTE, "6.0")
}

func TestPlanner_AgePolicyTiers(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		ceiling string
	}{
		{name: "under 13", age: 9, ceiling: "6.0"},
		{name: "teen", age: 15, ceiling: "7.5"},
		{name: "boundary 13", age: 13, ceiling: "7.5"},
		{name: "boundary 16", age: 16, ceiling: "7.5"},
	}
	var planner Planner
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans, err := planner.Plan(mood.Excited, PlanOptions{Age: tt.age})
			p := singlePlan(t, plans, err)
			wantParam(t, p, catalog.ParamVoteAverageLTE, tt.ceiling)
		})
	}

	t.Run("adult and unset carry no cap", func(t *testing.T) {
		for _, age := range []int{0, 17, 30} {
			plans, err := planner.Plan(mood.Excited, PlanOptions{Age: age})
			p := singlePlan(t, plans, err)
			wantNoParam(t, p, catalog.ParamVoteAverageLTE)
		}
	})
}

func TestPlanner_FirstLanguageOnly(t *testing.T) {
	var planner Planner

	plans, err := planner.Plan(mood.Calm, PlanOptions{Languages: []string{"fr", "en", "de"}})
	p := singlePlan(t, plans, err)
	wantParam(t, p, catalog.ParamOriginalLanguage, "fr")
}

func TestPlanner_PreferredGenresAugmentMood(t *testing.T) {
	var planner Planner

	// Preference genres are unioned after the mood's own set; overlapping
	// ids do not duplicate.
	plans, err := planner.Plan(mood.Romantic, PlanOptions{PreferredGenres: []int{35, 18, 27}})
	p := singlePlan(t, plans, err)
	wantParam(t, p, catalog.ParamWithGenres, "10749,35,18,27")
}

func TestPlanner_UnknownMood(t *testing.T) {
	var planner Planner

	if _, err := planner.Plan(mood.ID("furious"), PlanOptions{}); err == nil {
		t.Fatal("Plan with unmapped mood: want error")
	}
}

func TestRatingCeiling(t *testing.T) {
	tests := []struct {
		age     int
		ceiling float64
		active  bool
	}{
		{age: 0, active: false},
		{age: -3, active: false},
		{age: 12, ceiling: 6.0, active: true},
		{age: 13, ceiling: 7.5, active: true},
		{age: 16, ceiling: 7.5, active: true},
		{age: 17, active: false},
		{age: 42, active: false},
	}
	for _, tt := range tests {
		ceiling, active := RatingCeiling(tt.age)
		if active != tt.active || (active && ceiling != tt.ceiling) {
			t.Errorf("RatingCeiling(%d) = (%v, %v), want (%v, %v)",
				tt.age, ceiling, active, tt.ceiling, tt.active)
		}
	}
}

func TestGenresForMood_AllMoodsMapped(t *testing.T) {
	for _, id := range mood.CanonicalOrder {
		genres, err := GenresForMood(id)
		if err != nil {
			t.Errorf("GenresForMood(%s): %v", id, err)
			continue
		}
		if len(genres) == 0 {
			t.Errorf("GenresForMood(%s): empty genre set", id)
		}
	}
}

func TestGenresForMood_ReturnsCopy(t *testing.T) {
	g1, _ := GenresForMood(mood.Happy)
	g1[0] = -1
	g2, _ := GenresForMood(mood.Happy)
	if g2[0] == -1 {
		t.Fatal("GenresForMood returned a view over the shared table")
	}
}
