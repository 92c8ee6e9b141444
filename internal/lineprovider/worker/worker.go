// Package worker consumes correlated bet requests, answers them from the
// events store and publishes the response tagged with the inbound
// correlation id.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventProvider interface {
	AvailableEvents(ctx context.Context) ([]models.Event, error)
	AvailableEvent(ctx context.Context, eventID int64) (*models.Event, error)
}

type publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte, queue string, correlationID string) error
}

type Worker struct {
	log logger.Logger

	consumer  *rabbitmq.Consumer
	publisher publisher
	events    eventProvider

	requestQueue       string
	requestRoutingKey  string
	responseQueue      string
	responseRoutingKey string
}

func New(
	log logger.Logger,
	consumer *rabbitmq.Consumer,
	publisher publisher,
	events eventProvider,
	requestQueue string,
	requestRoutingKey string,
	responseQueue string,
	responseRoutingKey string,
) *Worker {
	return &Worker{
		log:                log,
		consumer:           consumer,
		publisher:          publisher,
		events:             events,
		requestQueue:       requestQueue,
		requestRoutingKey:  requestRoutingKey,
		responseQueue:      responseQueue,
		responseRoutingKey: responseRoutingKey,
	}
}

// Run consumes the request queue for the process lifetime.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.requestQueue, w.requestRoutingKey, w.handle)
}

// handle answers one request message. The inbound message is acknowledged
// by the consumer loop whether or not processing succeeded; a processing
// error only costs the caller its response.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) error {
	const op = "worker.handle"

	response := w.dispatch(ctx, d.Body)

	if err := w.publisher.Publish(ctx,
		w.responseRoutingKey,
		response,
		w.responseQueue,
		d.CorrelationId,
	); err != nil {
		return fmt.Errorf("%s: publish response: %w", op, err)
	}

	w.log.DebugContext(ctx, op, "correlation_id", d.CorrelationId)

	return nil
}

// dispatch decodes the request and routes it by its declared kind. Every
// outcome, including an unknown kind, produces a response body: the caller
// is waiting and a silent drop would leave it hanging until its timeout.
func (w *Worker) dispatch(ctx context.Context, body []byte) []byte {
	const op = "worker.dispatch"

	var request models.BetRequest
	if err := json.Unmarshal(body, &request); err != nil {
		w.log.Error(op, "decode error", err.Error())
		return errorBody("malformed request")
	}

	switch request.Request {
	case models.RequestAvailableEvents:
		events, err := w.events.AvailableEvents(ctx)
		if err != nil {
			w.log.Error(op, "error", err.Error())
			return errorBody("error during getting available events occurred")
		}

		return w.marshal(op, events)
	case models.RequestAvailableEventDetail:
		event, err := w.events.AvailableEvent(ctx, request.EventID)
		if err != nil {
			if errors.Is(err, internalErrors.ErrEventNotFound) {
				return errorBody(internalErrors.ErrEventNotFound.Error())
			}

			w.log.Error(op, "error", err.Error())
			return errorBody("error during getting available event occurred")
		}

		return w.marshal(op, event)
	default:
		w.log.Error(op, "error", internalErrors.ErrUnsupportedRequest.Error(),
			"request", string(request.Request))
		return errorBody(fmt.Sprintf("%s: %s", internalErrors.ErrUnsupportedRequest.Error(), request.Request))
	}
}

func (w *Worker) marshal(op string, payload any) []byte {
	body, err := json.Marshal(payload)
	if err != nil {
		w.log.Error(op, "encode error", err.Error())
		return errorBody("failed to encode response")
	}

	return body
}

func errorBody(reason string) []byte {
	body, _ := json.Marshal(models.ErrorResponse{Error: reason})
	return body
}
