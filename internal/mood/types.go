// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package mood implements puzzle-answer scoring: a sequence of puzzle
// answers is reduced into an aggregate mood vector, and the winning mood
// is selected with a deterministic tie-break.
//
// The mood set is fixed. Ties between moods are always resolved against
// CanonicalOrder, never against map iteration order, so scoring is
// reproducible across runs and across answer permutations.
package mood

import (
	"fmt"
	"time"
)

// ID identifies one of the fixed set of moods.
type ID string

// The fixed mood set.
const (
	Happy       ID = "happy"
	Sad         ID = "sad"
	Excited     ID = "excited"
	Calm        ID = "calm"
	Adventurous ID = "adventurous"
	Romantic    ID = "romantic"
	Thoughtful  ID = "thoughtful"
	Scared      ID = "scared"
)

// CanonicalOrder is the pinned ordering used for tie-breaking. When two or
// more moods tie for the highest accumulated score, the one appearing
// earliest in this list wins.
var CanonicalOrder = []ID{
	Happy,
	Sad,
	Excited,
	Calm,
	Adventurous,
	Romantic,
	Thoughtful,
	Scared,
}

// Parse validates a mood string and returns its ID.
func Parse(s string) (ID, error) {
	for _, id := range CanonicalOrder {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// PointMap maps moods to small positive integer weights. It is attached to
// each selectable puzzle option as static configuration and never mutated
// at runtime.
type PointMap map[ID]int

// Vector holds accumulated scores per mood for one scoring pass. Vectors
// are built fresh each pass and never persisted; only the resolved primary
// mood is.
type Vector map[ID]int

// Add accumulates a point map into the vector.
func (v Vector) Add(points PointMap) {
	for id, score := range points {
		v[id] += score
	}
}

// Primary returns the mood with the strictly highest accumulated score.
// Ties resolve to the mood earliest in CanonicalOrder. The second return
// is false when the vector is empty.
func (v Vector) Primary() (ID, bool) {
	best := ID("")
	bestScore := -1
	for _, id := range CanonicalOrder {
		score, ok := v[id]
		if !ok {
			continue
		}
		if score > bestScore {
			best = id
			bestScore = score
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// PuzzleAnswer records one puzzle selection. Answers are immutable once
// recorded; the ordered sequence for one session is the scoring input.
type PuzzleAnswer struct {
	QuestionID     int       `json:"question_id" validate:"required"`
	OptionID       string    `json:"option_id" validate:"required"`
	ResponseTimeMs int64     `json:"response_time_ms,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

// Option is one selectable answer to a puzzle question.
type Option struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Moods PointMap `json:"moods"`
}

// Question is one puzzle question in the static question bank.
type Question struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options"`
}

// QuestionBank is the static (questionID, optionID) -> PointMap lookup used
// by the scorer. Banks are loaded once and treated as read-only.
type QuestionBank struct {
	questions map[int]map[string]Option
}

// NewQuestionBank builds a bank from a question list. Every option must
// contribute positive weight to at least one mood, and every referenced
// mood must be in the canonical set; violations are configuration bugs and
// fail construction.
func NewQuestionBank(questions []Question) (*QuestionBank, error) {
	bank := &QuestionBank{questions: make(map[int]map[string]Option, len(questions))}

	for _, q := range questions {
		if _, dup := bank.questions[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		opts := make(map[string]Option, len(q.Options))
		for _, opt := range q.Options {
			if _, dup := opts[opt.ID]; dup {
				return nil, fmt.Errorf("question %d: duplicate option %q", q.ID, opt.ID)
			}
			if err := validatePointMap(q.ID, opt); err != nil {
				return nil, err
			}
			opts[opt.ID] = opt
		}
		bank.questions[q.ID] = opts
	}

	return bank, nil
}

// validatePointMap enforces the invariant that an answer contributes to at
// least one mood with a positive weight.
func validatePointMap(questionID int, opt Option) error {
	if len(opt.Moods) == 0 {
		return fmt.Errorf("question %d option %q: empty mood point map", questionID, opt.ID)
	}
	positive := false
	for id, weight := range opt.Moods {
		if _, err := Parse(string(id)); err != nil {
			return fmt.Errorf("question %d option %q: %w", questionID, opt.ID, err)
		}
		if weight <= 0 {
			return fmt.Errorf("question %d option %q: mood %s has non-positive weight %d",
				questionID, opt.ID, id, weight)
		}
		positive = true
	}
	if !positive {
		return fmt.Errorf("question %d option %q: no positive mood weight", questionID, opt.ID)
	}
	return nil
}

// Lookup resolves an option's point map by (questionID, optionID).
func (b *QuestionBank) Lookup(questionID int, optionID string) (PointMap, error) {
	opts, ok := b.questions[questionID]
	if !ok {
		return nil, &ConfigurationError{QuestionID: questionID, OptionID: optionID}
	}
	opt, ok := opts[optionID]
	if !ok {
		return nil, &ConfigurationError{QuestionID: questionID, OptionID: optionID}
	}
	return opt.Moods, nil
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}
