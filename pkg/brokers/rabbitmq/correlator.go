package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/pkg/logger"
)

// ErrResponseTimeout is returned when no response tagged with the awaited
// correlation id arrives within the configured deadline.
var ErrResponseTimeout = errors.New("timed out waiting for correlated response")

// waiter is a single-fulfillment slot: the channel is buffered so the demux
// loop can hand off a response before, or without, anyone blocking on it,
// and the fulfilled flag keeps a duplicate delivery from blocking the loop.
type waiter struct {
	ch        chan json.RawMessage
	fulfilled bool
}

// Correlator matches responses on a shared durable queue to in-process
// waiters. One consumer goroutine drains the queue for the whole process and
// demultiplexes each delivery by its correlation id, so no waiter can ever
// drain and discard a response destined for another one. Every inspected
// message is acknowledged; responses nobody registered for are dropped.
//
// Callers must Register the correlation id BEFORE publishing the request:
// the worker may answer before the publish call even returns, and a response
// arriving ahead of its waiter would otherwise be lost.
type Correlator struct {
	consumer   *Consumer
	queue      string
	routingKey string
	timeout    time.Duration

	mu      sync.Mutex
	waiters map[string]*waiter

	log logger.Logger
}

func NewCorrelator(
	consumer *Consumer,
	queue string,
	routingKey string,
	timeout time.Duration,
	log logger.Logger,
) *Correlator {
	return &Correlator{
		consumer:   consumer,
		queue:      queue,
		routingKey: routingKey,
		timeout:    timeout,
		waiters:    make(map[string]*waiter),
		log:        log,
	}
}

// Run consumes the response queue until the context is canceled. It must be
// running for Await to ever complete.
func (c *Correlator) Run(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.queue, c.routingKey, func(_ context.Context, d amqp.Delivery) error {
		c.resolve(d.CorrelationId, d.Body)
		return nil
	})
}

// Register reserves the correlation id and must precede the publish. A
// response resolved between Register and Await is held in the waiter's
// buffer, not lost.
func (c *Correlator) Register(correlationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.waiters[correlationID]; exists {
		return fmt.Errorf("correlation id %q already awaited", correlationID)
	}

	c.waiters[correlationID] = &waiter{ch: make(chan json.RawMessage, 1)}

	return nil
}

// Cancel drops a registration whose request was never published.
func (c *Correlator) Cancel(correlationID string) {
	c.unregister(correlationID)
}

// Await blocks until a response tagged with the registered correlation id is
// resolved, the context is canceled, or the deadline expires with
// ErrResponseTimeout. The registration is removed on every exit path, so a
// response arriving after a timeout is dropped by the demux loop instead of
// leaking a waiter.
func (c *Correlator) Await(ctx context.Context, correlationID string) (json.RawMessage, error) {
	const op = "brokers.rabbitmq.Await"

	c.mu.Lock()
	w, ok := c.waiters[correlationID]
	c.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%s: correlation id %q is not registered", op, correlationID)
	}
	defer c.unregister(correlationID)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case body := <-w.ch:
		return body, nil
	case <-timer.C:
		c.log.Warn(op, "correlation_id", correlationID, "timeout", c.timeout.String())
		return nil, fmt.Errorf("%s: %w", op, ErrResponseTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (c *Correlator) unregister(correlationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.waiters, correlationID)
}

// resolve hands the body to the waiter registered under the correlation id.
// A delivery with a foreign or empty correlation id, or a duplicate for an
// already fulfilled id, has no claim here and is dropped; it was already
// acknowledged by the consumer loop.
func (c *Correlator) resolve(correlationID string, body []byte) bool {
	c.mu.Lock()
	w, ok := c.waiters[correlationID]
	if ok && w.fulfilled {
		ok = false
	}
	if ok {
		w.fulfilled = true
	}
	c.mu.Unlock()

	if !ok {
		c.log.Warn("dropping response without waiter", "correlation_id", correlationID)
		return false
	}

	w.ch <- append(json.RawMessage(nil), body...)

	return true
}
