package get

import (
	"context"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventGetter interface {
	Events(ctx context.Context, offset, limit int) ([]models.Event, error)
}

type EventRetrievalService struct {
	log logger.Logger

	eventGetter eventGetter
}

func New(log logger.Logger, eventGetter eventGetter) *EventRetrievalService {
	return &EventRetrievalService{
		log:         log,
		eventGetter: eventGetter,
	}
}

func (es *EventRetrievalService) Events(ctx context.Context, offset, limit int) ([]models.Event, error) {
	const op = "services.event.Events"

	events, err := es.eventGetter.Events(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}
