// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemood/internal/logging"
)

// zerologAdapter implements watermill.LoggerAdapter over the process
// logger so pub/sub internals log in the same format as everything else.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewLoggerAdapter returns a watermill logger backed by the global logger.
func NewLoggerAdapter() watermill.LoggerAdapter {
	return &zerologAdapter{logger: logging.Logger()}
}

func (a *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	addFields(a.logger.Error().Err(err), fields).Msg(msg)
}

func (a *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	// Watermill is chatty at info level; demote to debug.
	addFields(a.logger.Debug(), fields).Msg(msg)
}

func (a *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	addFields(a.logger.Debug(), fields).Msg(msg)
}

func (a *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	addFields(a.logger.Trace(), fields).Msg(msg)
}

func (a *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	logger := a.logger
	for k, v := range fields {
		logger = logger.With().Interface(k, v).Logger()
	}
	return &zerologAdapter{logger: logger}
}

func addFields(ev *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	return ev
}
