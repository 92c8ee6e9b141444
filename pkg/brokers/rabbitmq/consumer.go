package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/pkg/logger"
)

// Handler processes one delivery. A returned error is logged and the
// message is acknowledged anyway: the protocol has no redelivery.
type Handler func(ctx context.Context, d amqp.Delivery) error

type Consumer struct {
	conn     *Connection
	exchange string

	log logger.Logger
}

func NewConsumer(conn *Connection, exchange string, log logger.Logger) *Consumer {
	return &Consumer{
		conn:     conn,
		exchange: exchange,
		log:      log,
	}
}

// Consume declares and binds the durable queue, then delivers messages to
// the handler until the context is canceled or the broker closes the
// delivery stream. Every inspected message is acknowledged.
func (c *Consumer) Consume(ctx context.Context, queue, routingKey string, handler Handler) error {
	const op = "brokers.rabbitmq.Consume"

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("%s: open channel: %w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if err = declareAndBindQueue(ch, c.exchange, queue, routingKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx,
		queue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: consume: %w", op, err)
	}

	c.log.Info("consuming messages", "queue", queue)

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: deliveries channel closed", op)
			}

			if handlerErr := handler(ctx, d); handlerErr != nil {
				c.log.Error(op, "queue", queue, "error", handlerErr.Error())
			}

			if ackErr := d.Ack(false); ackErr != nil {
				c.log.Error(op, "queue", queue, "ack error", ackErr.Error())
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
