// Package realtime fans auction and match events out to subscribed clients.
// Delivery is fire-and-forget: services log a failed publish and carry on,
// because the persisted state is authoritative and events are advisory.
package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topics carried over the event channel.
const (
	TopicAuctionStarted = "auction-started"
	TopicNewBid         = "new-bid"
	TopicPlayerSold     = "player-sold"
	TopicPlayerUnsold   = "player-unsold"
	TopicMatchUpdate    = "match-update"
	TopicInningsEnded   = "innings-ended"
)

// Event is the envelope published for every topic. The ID lets at-least-once
// consumers deduplicate.
type Event struct {
	ID      string    `json:"id"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// NewEvent stamps an envelope around a payload.
func NewEvent(topic string, payload any) Event {
	return Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}

// Broadcaster publishes an event to every subscriber of a topic.
// No ordering or delivery guarantee is consumed by the core.
type Broadcaster interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Nop discards every event. Useful as a default and in tests that do not
// assert on fan-out.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

var _ Broadcaster = Nop{}
