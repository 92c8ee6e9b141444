package list

import (
	"context"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventsProvider interface {
	AvailableEvents(ctx context.Context) ([]models.Event, error)
}

type eventsCache interface {
	Get(ctx context.Context) ([]models.Event, bool)
	Set(ctx context.Context, events []models.Event)
}

type EventListingService struct {
	log   logger.Logger
	cache eventsCache

	provider eventsProvider
}

func New(log logger.Logger, cache eventsCache, provider eventsProvider) *EventListingService {
	return &EventListingService{
		log:      log,
		cache:    cache,
		provider: provider,
	}
}

// AvailableEvents serves from the short-TTL cache when warm; otherwise it
// performs the correlated round-trip to the provider and refills the cache.
func (es *EventListingService) AvailableEvents(ctx context.Context) ([]models.Event, error) {
	const op = "services.events.AvailableEvents"

	if events, ok := es.cache.Get(ctx); ok {
		es.log.DebugContext(ctx, op, "source", "cache")
		return events, nil
	}

	events, err := es.provider.AvailableEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	es.cache.Set(ctx, events)

	return events, nil
}
