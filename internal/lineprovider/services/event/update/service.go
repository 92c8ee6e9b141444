package update

import (
	"context"
	"fmt"
	"time"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventUpdater interface {
	Event(ctx context.Context, eventID int64) (*models.Event, error)
	Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error)
}

type statusNotifier interface {
	Notify(ctx context.Context, eventID int64, newStatus models.EventStatus) error
}

type EventUpdateService struct {
	log logger.Logger

	eventUpdater eventUpdater
	notifier     statusNotifier
}

func New(log logger.Logger, eventUpdater eventUpdater, notifier statusNotifier) *EventUpdateService {
	return &EventUpdateService{
		log:          log,
		eventUpdater: eventUpdater,
		notifier:     notifier,
	}
}

// Update applies a partial update. Setting a terminal status forces the
// deadline to now, closing the event to new bets. When the status actually
// changed, a status update is published after the commit; a failed publish
// is logged and swallowed because the stored update is the source of truth.
func (es *EventUpdateService) Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error) {
	const op = "services.event.Update"

	existing, err := es.eventUpdater.Event(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Status != nil && upd.Status.Terminal() {
		now := time.Now().UTC()
		upd.Deadline = &now
	}

	updated, err := es.eventUpdater.Update(ctx, eventID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Status != nil && existing.Status != updated.Status {
		if notifyErr := es.notifier.Notify(ctx, eventID, updated.Status); notifyErr != nil {
			es.log.ErrorContext(ctx, op,
				"event_id", eventID,
				"notify error", notifyErr.Error(),
			)
		}
	}

	return updated, nil
}
