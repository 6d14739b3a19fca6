package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// channelFormat namespaces event channels, e.g. cricket.events.new-bid.
const channelFormat = "cricket.events.%s"

// RedisBroadcaster publishes event envelopes to Redis pub/sub channels, one
// channel per topic. Gateway processes subscribe and push to browsers.
type RedisBroadcaster struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisBroadcaster(client *redis.Client, logger zerolog.Logger) *RedisBroadcaster {
	l := logger.With().Str("module", "realtime").Str("component", "redis").Logger()
	return &RedisBroadcaster{client: client, log: l}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, topic string, payload any) error {
	ev := NewEvent(topic, payload)
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", topic, err)
	}
	channel := fmt.Sprintf(channelFormat, topic)
	if err := b.client.Publish(ctx, channel, raw).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	b.log.Debug().Str("topic", topic).Str("event_id", ev.ID).Msg("event published")
	return nil
}

var _ Broadcaster = (*RedisBroadcaster)(nil)
