package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type Publisher struct {
	conn     *Connection
	exchange string

	log logger.Logger
}

func NewPublisher(conn *Connection, exchange string, log logger.Logger) *Publisher {
	return &Publisher{
		conn:     conn,
		exchange: exchange,
		log:      log,
	}
}

// Publish opens a fresh channel, makes sure the exchange and the target
// queue exist and are bound under the routing key, and publishes a
// persistent JSON message. The correlation id travels as message metadata,
// never inside the body; fire-and-forget callers pass an empty id.
// There is no retry: a failed publish is returned to the caller as is.
func (p *Publisher) Publish(
	ctx context.Context,
	routingKey string,
	body []byte,
	queue string,
	correlationID string,
) error {
	const op = "brokers.rabbitmq.Publish"

	ch, err := p.conn.Channel()
	if err != nil {
		p.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: open channel: %w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if err = declareAndBindQueue(ch, p.exchange, queue, routingKey); err != nil {
		p.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now().UTC(),
			CorrelationId: correlationID,
			Body:          body,
		},
	); err != nil {
		p.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: publish: %w", op, err)
	}

	return nil
}
