// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus is the in-process pub/sub for interaction events. One process, one
// session; a broker would add operational weight with nothing to balance
// it, so the bus is a buffered in-memory channel.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus. A nil logger falls back to the process logger.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, logger),
	}
}

// Publish emits one interaction event. The event is validated before it
// leaves the request path so consumers never see malformed payloads from
// our own publisher.
func (b *Bus) Publish(e *InteractionEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	payload, err := e.Marshal()
	if err != nil {
		return fmt.Errorf("encode interaction event: %w", err)
	}
	msg := message.NewMessage(e.EventID, payload)
	if err := b.pubsub.Publish(TopicInteractions, msg); err != nil {
		return fmt.Errorf("publish interaction event: %w", err)
	}
	return nil
}

// Subscriber exposes the bus for router wiring.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the bus down; pending messages are dropped.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
