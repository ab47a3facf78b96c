// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package mood

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates scoring was attempted with zero answers. This is
// a caller error and is never retried; the caller must guard or supply a
// default mood upstream.
var ErrEmptyInput = errors.New("no puzzle answers to score")

// ConfigurationError indicates a (questionID, optionID) pair that does not
// exist in the static question bank. A validated UI should never produce
// one, but the scorer checks rather than assumes.
type ConfigurationError struct {
	QuestionID int
	OptionID   string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question %d option %q not found in question bank", e.QuestionID, e.OptionID)
}
