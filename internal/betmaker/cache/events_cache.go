package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

const availableEventsKey = "betmaker:available_events"

// EventsCache keeps the provider's available-events answer in Redis for a
// short TTL so repeated listings do not pay a broker round-trip each time.
type EventsCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.Logger
}

func NewEventsCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *EventsCache {
	return &EventsCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *EventsCache) Get(ctx context.Context) ([]models.Event, bool) {
	const op = "cache.events.Get"

	raw, err := c.rdb.Get(ctx, availableEventsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(op, "error", err.Error())
		}
		return nil, false
	}

	var events []models.Event
	if err = json.Unmarshal(raw, &events); err != nil {
		c.log.Warn(op, "decode error", err.Error())
		return nil, false
	}

	return events, true
}

func (c *EventsCache) Set(ctx context.Context, events []models.Event) {
	const op = "cache.events.Set"

	raw, err := json.Marshal(events)
	if err != nil {
		c.log.Warn(op, "encode error", err.Error())
		return
	}

	if err = c.rdb.Set(ctx, availableEventsKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn(op, "error", err.Error())
	}
}
