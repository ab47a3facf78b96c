// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package mood

// DefaultQuestions returns the built-in five-puzzle question bank. Each
// option's point map projects onto the canonical mood set. Deployments can
// override the bank through configuration; this is the shipped default.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:          1,
			Title:       "Color Harmony",
			Description: "Choose the color combination that feels right to you",
			Options: []Option{
				{ID: "warm_energetic", Label: "Warm & Energetic", Moods: PointMap{Excited: 3, Happy: 2}},
				{ID: "cool_calm", Label: "Cool & Calm", Moods: PointMap{Calm: 3, Happy: 1}},
				{ID: "dark_moody", Label: "Dark & Moody", Moods: PointMap{Thoughtful: 2, Sad: 2}},
				{ID: "bright_happy", Label: "Bright & Happy", Moods: PointMap{Happy: 3, Excited: 2}},
				{ID: "muted_soft", Label: "Muted & Soft", Moods: PointMap{Calm: 2, Scared: 1}},
			},
		},
		{
			ID:          2,
			Title:       "Pattern Completion",
			Description: "Complete the pattern with the missing piece",
			Options: []Option{
				{ID: "angular_sharp", Label: "Angular & Sharp", Moods: PointMap{Excited: 2, Thoughtful: 1}},
				{ID: "curved_flowing", Label: "Curved & Flowing", Moods: PointMap{Calm: 3, Romantic: 1}},
				{ID: "chaotic_complex", Label: "Complex & Dynamic", Moods: PointMap{Scared: 2, Thoughtful: 1}},
				{ID: "symmetrical_ordered", Label: "Symmetrical & Ordered", Moods: PointMap{Calm: 2, Thoughtful: 2}},
			},
		},
		{
			ID:          3,
			Title:       "Story Context",
			Description: "A character stands at the edge of a cliff, looking at the vast landscape ahead",
			Options: []Option{
				{ID: "excited_adventure", Label: "Excited for the adventure", Moods: PointMap{Excited: 3, Adventurous: 2}},
				{ID: "peaceful_contemplation", Label: "Peaceful and contemplative", Moods: PointMap{Calm: 2, Thoughtful: 2}},
				{ID: "anxious_unknown", Label: "Anxious about the unknown", Moods: PointMap{Scared: 3, Thoughtful: 1}},
				{ID: "nostalgic_memories", Label: "Nostalgic for past journeys", Moods: PointMap{Thoughtful: 2, Sad: 2}},
			},
		},
		{
			ID:          4,
			Title:       "Rhythm Preference",
			Description: "Which rhythm feels right to you now?",
			Options: []Option{
				{ID: "fast_upbeat", Label: "Fast and energetic", Moods: PointMap{Excited: 3, Happy: 2}},
				{ID: "moderate_steady", Label: "Steady and balanced", Moods: PointMap{Calm: 2, Thoughtful: 1}},
				{ID: "slow_peaceful", Label: "Slow and peaceful", Moods: PointMap{Calm: 3, Romantic: 1}},
				{ID: "complex_irregular", Label: "Complex and varied", Moods: PointMap{Thoughtful: 2, Adventurous: 1}},
			},
		},
		{
			ID:          5,
			Title:       "Visual Association",
			Description: "Which image speaks to you?",
			Options: []Option{
				{ID: "nature_peaceful", Label: "Peaceful forest scene", Moods: PointMap{Calm: 3, Adventurous: 1}},
				{ID: "city_vibrant", Label: "Vibrant city lights", Moods: PointMap{Excited: 2, Happy: 2}},
				{ID: "abstract_creative", Label: "Abstract artistic expression", Moods: PointMap{Thoughtful: 3, Romantic: 1}},
				{ID: "minimal_clean", Label: "Clean minimal design", Moods: PointMap{Calm: 2, Thoughtful: 1}},
			},
		},
	}
}

// DefaultQuestionBank builds the built-in bank. Panics on an invalid static
// table, which is a programming error caught at startup and in tests.
func DefaultQuestionBank() *QuestionBank {
	bank, err := NewQuestionBank(DefaultQuestions())
	if err != nil {
		panic(err)
	}
	return bank
}
