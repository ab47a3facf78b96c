// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package events carries interaction events from the request path to the
// persistence and observability side. State mutations happen synchronously
// in the handlers that need their results; the event pipeline's job is to
// flush snapshots and count interactions without blocking requests, with
// write failures surfaced instead of swallowed.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics.
const (
	TopicInteractions = "cinemood.interactions"
)

// Interaction event types.
const (
	TypeMovieViewed      = "movie.viewed"
	TypeMovieFavorited   = "movie.favorited"
	TypePreferencesReset = "preferences.reset"
)

// InteractionEvent is the canonical event emitted after a user
// interaction has been applied to in-memory state.
type InteractionEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	MovieID   int       `json:"movie_id,omitempty"`
	GenreIDs  []int     `json:"genre_ids,omitempty"`
	Favorited bool      `json:"favorited,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewInteractionEvent creates an event with a unique ID and timestamp.
func NewInteractionEvent(eventType string) *InteractionEvent {
	return &InteractionEvent{
		EventID:   uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (e *InteractionEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("interaction event: missing event_id")
	}
	switch e.Type {
	case TypeMovieViewed, TypeMovieFavorited:
		if e.MovieID <= 0 {
			return fmt.Errorf("interaction event %s: missing movie_id", e.Type)
		}
	case TypePreferencesReset:
	default:
		return fmt.Errorf("interaction event: unknown type %q", e.Type)
	}
	return nil
}

// Marshal encodes the event for transport.
func (e *InteractionEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalInteractionEvent decodes and validates a transported event.
func UnmarshalInteractionEvent(data []byte) (*InteractionEvent, error) {
	var e InteractionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode interaction event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
