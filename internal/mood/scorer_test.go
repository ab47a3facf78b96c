// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package mood

import (
	"errors"
	"testing"
)

// testBank builds a minimal bank where each option maps to a single known
// point map, so tests can compose exact vectors.
func testBank(t *testing.T) *QuestionBank {
	t.Helper()

	bank, err := NewQuestionBank([]Question{
		{ID: 1, Title: "q1", Options: []Option{
			{ID: "a", Moods: PointMap{Happy: 2}},
			{ID: "b", Moods: PointMap{Happy: 1, Calm: 2}},
			{ID: "c", Moods: PointMap{Calm: 1}},
			{ID: "d", Moods: PointMap{Scared: 3}},
			{ID: "e", Moods: PointMap{Thoughtful: 1, Sad: 1}},
		}},
	})
	if err != nil {
		t.Fatalf("NewQuestionBank() error = %v", err)
	}
	return bank
}

func answersFor(optionIDs ...string) []PuzzleAnswer {
	answers := make([]PuzzleAnswer, len(optionIDs))
	for i, id := range optionIDs {
		answers[i] = PuzzleAnswer{QuestionID: 1, OptionID: id}
	}
	return answers
}

func TestScore(t *testing.T) {
	bank := testBank(t)

	tests := []struct {
		name     string
		options  []string
		wantMood ID
	}{
		{
			// Aggregate {happy:3, calm:3}; canonical order places happy first.
			name:     "tie resolves to canonical order",
			options:  []string{"a", "b", "c"},
			wantMood: Happy,
		},
		{
			name:     "single dominant mood",
			options:  []string{"d"},
			wantMood: Scared,
		},
		{
			name:     "accumulation across answers",
			options:  []string{"c", "c", "c", "a"},
			wantMood: Calm,
		},
		{
			// sad and thoughtful tie at 1; sad is earlier in canonical order.
			name:     "tie between later moods",
			options:  []string{"e"},
			wantMood: Sad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, vector, err := Score(bank, answersFor(tt.options...))
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got != tt.wantMood {
				t.Errorf("Score() = %s, want %s (vector %v)", got, tt.wantMood, vector)
			}
		})
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	bank := testBank(t)

	permutations := [][]string{
		{"a", "b", "c"},
		{"a", "c", "b"},
		{"b", "a", "c"},
		{"b", "c", "a"},
		{"c", "a", "b"},
		{"c", "b", "a"},
	}

	want, _, err := Score(bank, answersFor(permutations[0]...))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	for _, perm := range permutations[1:] {
		got, _, err := Score(bank, answersFor(perm...))
		if err != nil {
			t.Fatalf("Score(%v) error = %v", perm, err)
		}
		if got != want {
			t.Errorf("Score(%v) = %s, want %s", perm, got, want)
		}
	}
}

func TestScore_EmptyInput(t *testing.T) {
	bank := testBank(t)

	_, _, err := Score(bank, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Score(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestScore_UnknownOption(t *testing.T) {
	bank := testBank(t)

	tests := []struct {
		name   string
		answer PuzzleAnswer
	}{
		{"unknown question", PuzzleAnswer{QuestionID: 99, OptionID: "a"}},
		{"unknown option", PuzzleAnswer{QuestionID: 1, OptionID: "zzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Score(bank, []PuzzleAnswer{tt.answer})

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Score() error = %v, want *ConfigurationError", err)
			}
			if cfgErr.QuestionID != tt.answer.QuestionID || cfgErr.OptionID != tt.answer.OptionID {
				t.Errorf("ConfigurationError = %+v, want question %d option %q",
					cfgErr, tt.answer.QuestionID, tt.answer.OptionID)
			}
		})
	}
}

func TestNewQuestionBank_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantError bool
	}{
		{
			name: "valid bank",
			questions: []Question{
				{ID: 1, Options: []Option{{ID: "a", Moods: PointMap{Happy: 1}}}},
			},
			wantError: false,
		},
		{
			name: "empty point map",
			questions: []Question{
				{ID: 1, Options: []Option{{ID: "a", Moods: PointMap{}}}},
			},
			wantError: true,
		},
		{
			name: "zero weight",
			questions: []Question{
				{ID: 1, Options: []Option{{ID: "a", Moods: PointMap{Happy: 0}}}},
			},
			wantError: true,
		},
		{
			name: "unknown mood id",
			questions: []Question{
				{ID: 1, Options: []Option{{ID: "a", Moods: PointMap{ID("giddy"): 2}}}},
			},
			wantError: true,
		},
		{
			name: "duplicate question id",
			questions: []Question{
				{ID: 1, Options: []Option{{ID: "a", Moods: PointMap{Happy: 1}}}},
				{ID: 1, Options: []Option{{ID: "b", Moods: PointMap{Sad: 1}}}},
			},
			wantError: true,
		},
		{
			name: "duplicate option id",
			questions: []Question{
				{ID: 1, Options: []Option{
					{ID: "a", Moods: PointMap{Happy: 1}},
					{ID: "a", Moods: PointMap{Sad: 1}},
				}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestionBank(tt.questions)
			if (err != nil) != tt.wantError {
				t.Errorf("NewQuestionBank() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestDefaultQuestionBank(t *testing.T) {
	bank := DefaultQuestionBank()

	if bank.Len() != 5 {
		t.Errorf("DefaultQuestionBank() has %d questions, want 5", bank.Len())
	}

	// Every shipped option must resolve through Lookup.
	for _, q := range DefaultQuestions() {
		for _, opt := range q.Options {
			if _, err := bank.Lookup(q.ID, opt.ID); err != nil {
				t.Errorf("Lookup(%d, %q) error = %v", q.ID, opt.ID, err)
			}
		}
	}
}

func TestParse(t *testing.T) {
	for _, id := range CanonicalOrder {
		got, err := Parse(string(id))
		if err != nil {
			t.Errorf("Parse(%q) error = %v", id, err)
		}
		if got != id {
			t.Errorf("Parse(%q) = %s", id, got)
		}
	}

	if _, err := Parse("furious"); err == nil {
		t.Error("Parse(\"furious\") expected error")
	}
}
