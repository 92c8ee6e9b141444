// Package listener runs the bet-maker's long-lived consumer for event
// status updates coming from the line-provider.
package listener

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type settler interface {
	Apply(ctx context.Context, update models.StatusUpdateEvent) error
}

type Listener struct {
	log logger.Logger

	consumer *rabbitmq.Consumer
	settler  settler

	queue      string
	routingKey string
}

func New(
	log logger.Logger,
	consumer *rabbitmq.Consumer,
	settler settler,
	queue string,
	routingKey string,
) *Listener {
	return &Listener{
		log:        log,
		consumer:   consumer,
		settler:    settler,
		queue:      queue,
		routingKey: routingKey,
	}
}

// Run consumes status updates for the process lifetime. Failed settlements
// are logged and the message is acknowledged anyway; there is no retry.
func (l *Listener) Run(ctx context.Context) error {
	return l.consumer.Consume(ctx, l.queue, l.routingKey, l.handle)
}

func (l *Listener) handle(ctx context.Context, d amqp.Delivery) error {
	const op = "listener.handle"

	var update models.StatusUpdateEvent
	if err := json.Unmarshal(d.Body, &update); err != nil {
		return fmt.Errorf("%s: decode status update: %w", op, err)
	}

	l.log.InfoContext(ctx, op,
		"event_id", update.EventID,
		"new_status", string(update.NewStatus),
	)

	return l.settler.Apply(ctx, update)
}
