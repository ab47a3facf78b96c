// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package mood

// Score reduces a non-empty answer sequence into an aggregate mood vector
// and returns the winning mood. Accumulation is order-independent: any
// permutation of the same answers yields the same mood.
//
// Returns ErrEmptyInput for an empty sequence and *ConfigurationError when
// an answer references a (question, option) pair missing from the bank.
// Score is a pure function over its inputs; it has no side effects.
func Score(bank *QuestionBank, answers []PuzzleAnswer) (ID, Vector, error) {
	if len(answers) == 0 {
		return "", nil, ErrEmptyInput
	}

	vector := make(Vector, len(CanonicalOrder))
	for _, answer := range answers {
		points, err := bank.Lookup(answer.QuestionID, answer.OptionID)
		if err != nil {
			return "", nil, err
		}
		vector.Add(points)
	}

	// Bank validation guarantees every answer contributed at least one
	// positive weight, so the vector cannot be empty here.
	primary, ok := vector.Primary()
	if !ok {
		return "", nil, ErrEmptyInput
	}

	return primary, vector, nil
}
