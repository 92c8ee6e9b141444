// Package rabbitmq holds the transport primitives shared by both services:
// a dialed connection, a publisher that tags messages with a correlation id,
// a durable-queue consumer and the response correlator.
package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/pkg/logger"
)

const dialAttempts = 5

type Connection struct {
	conn *amqp.Connection
	log  logger.Logger
}

// NewConnection dials the broker, retrying a few times so the service
// survives the broker coming up later than the service container.
func NewConnection(url string, log logger.Logger) (*Connection, error) {
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}

		log.Warn("rabbitmq dial failed", "attempt", attempt, "error", err.Error())
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	return &Connection{conn: conn, log: log}, nil
}

func (c *Connection) Channel() (*amqp.Channel, error) {
	return c.conn.Channel()
}

func (c *Connection) Close() error {
	return c.conn.Close()
}

// declareAndBindQueue declares the named direct durable exchange, declares
// the durable queue and binds it under the routing key. Declarations are
// idempotent: repeating them for existing objects is a no-op on the broker.
func declareAndBindQueue(ch *amqp.Channel, exchange, queue, routingKey string) error {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeDirect,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	return nil
}
