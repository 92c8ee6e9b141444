package create

import (
	"context"
	"fmt"
	"time"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventCreator interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
}

type EventCreationService struct {
	log logger.Logger

	eventCreator eventCreator
}

func New(log logger.Logger, eventCreator eventCreator) *EventCreationService {
	return &EventCreationService{
		log:          log,
		eventCreator: eventCreator,
	}
}

func (es *EventCreationService) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	const op = "services.event.Create"

	event.Timestamp = time.Now().UTC()
	if event.Status == "" {
		event.Status = models.EventStatusNotFinished
	}

	created, err := es.eventCreator.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	es.log.InfoContext(ctx, op, "event_id", created.ID)

	return created, nil
}
