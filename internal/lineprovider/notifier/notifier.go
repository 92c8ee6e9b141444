// Package notifier publishes fire-and-forget status updates for events
// whose outcome changed. Failures never roll back the committed update.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte, queue string, correlationID string) error
}

type Notifier struct {
	log logger.Logger

	publisher publisher

	queue      string
	routingKey string
}

func New(log logger.Logger, publisher publisher, queue, routingKey string) *Notifier {
	return &Notifier{
		log:        log,
		publisher:  publisher,
		queue:      queue,
		routingKey: routingKey,
	}
}

// Notify publishes a StatusUpdateEvent. No response is expected, so the
// correlation id is left empty.
func (n *Notifier) Notify(ctx context.Context, eventID int64, newStatus models.EventStatus) error {
	const op = "notifier.Notify"

	body, err := json.Marshal(models.StatusUpdateEvent{
		EventID:   eventID,
		NewStatus: newStatus,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal status update: %w", op, err)
	}

	if err = n.publisher.Publish(ctx, n.routingKey, body, n.queue, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n.log.InfoContext(ctx, op, "event_id", eventID, "new_status", string(newStatus))

	return nil
}
