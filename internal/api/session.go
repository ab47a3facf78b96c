// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package api

import (
	"sync"

	"github.com/tomtom215/cinemood/internal/mood"
	"github.com/tomtom215/cinemood/internal/preferences"
)

// Session holds the single device session's resolved mood and profile.
// Only the primary mood string is kept; mood vectors are recomputed per
// scoring pass.
type Session struct {
	mu      sync.RWMutex
	mood    mood.ID
	profile preferences.Profile
}

// NewSession creates a session with the given restored state.
func NewSession(m mood.ID, profile preferences.Profile) *Session {
	return &Session{mood: m, profile: profile}
}

// Mood returns the current mood and whether one is set.
func (s *Session) Mood() (mood.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mood, s.mood != ""
}

// SetMood replaces the current mood.
func (s *Session) SetMood(m mood.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = m
}

// ClearMood unsets the current mood.
func (s *Session) ClearMood() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = ""
}

// Profile returns a copy of the profile.
func (s *Session) Profile() preferences.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.Languages = append([]string(nil), s.profile.Languages...)
	return p
}

// SetProfile replaces the profile.
func (s *Session) SetProfile(p preferences.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}
