// Package provider is the bet-maker's client for the line-provider: it
// publishes correlated request messages and waits for the matching
// responses on the shared response queue.
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte, queue string, correlationID string) error
}

type awaiter interface {
	Register(correlationID string) error
	Await(ctx context.Context, correlationID string) (json.RawMessage, error)
	Cancel(correlationID string)
}

type Client struct {
	log logger.Logger

	publisher publisher
	awaiter   awaiter

	requestQueue      string
	requestRoutingKey string
}

func NewClient(
	log logger.Logger,
	publisher publisher,
	awaiter awaiter,
	requestQueue string,
	requestRoutingKey string,
) *Client {
	return &Client{
		log:               log,
		publisher:         publisher,
		awaiter:           awaiter,
		requestQueue:      requestQueue,
		requestRoutingKey: requestRoutingKey,
	}
}

// AvailableEvents asks the provider for every event still open for betting.
func (c *Client) AvailableEvents(ctx context.Context) ([]models.Event, error) {
	const op = "provider.AvailableEvents"

	body, err := c.roundTrip(ctx, models.BetRequest{Request: models.RequestAvailableEvents})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if errMsg, isErr := models.ResponseError(body); isErr {
		c.log.Error(op, "provider error", errMsg)
		return nil, internalErrors.ErrProviderUnavailable
	}

	var events []models.Event
	if err = json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	return events, nil
}

// AvailableEventDetail asks the provider for a single open event. The
// provider distinguishes a domain miss (missing event or passed deadline)
// from its own store failing; only the former maps to ErrEventNotFound.
func (c *Client) AvailableEventDetail(ctx context.Context, eventID int64) (*models.Event, error) {
	const op = "provider.AvailableEventDetail"

	body, err := c.roundTrip(ctx, models.BetRequest{
		Request: models.RequestAvailableEventDetail,
		EventID: eventID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if errMsg, isErr := models.ResponseError(body); isErr {
		if errMsg == internalErrors.ErrEventNotFound.Error() {
			c.log.Warn(op, "event_id", eventID, "provider error", errMsg)
			return nil, internalErrors.ErrEventNotFound
		}

		c.log.Error(op, "event_id", eventID, "provider error", errMsg)
		return nil, internalErrors.ErrProviderUnavailable
	}

	var event models.Event
	if err = json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	return &event, nil
}

// roundTrip publishes the request under a fresh 128-bit correlation id and
// blocks until the correlator hands back the response tagged with it. The
// waiter is registered before the publish: the worker may answer before the
// publish call even returns, and an unregistered response would be dropped.
func (c *Client) roundTrip(ctx context.Context, request models.BetRequest) (json.RawMessage, error) {
	correlationID := uuid.NewString()

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if err = c.awaiter.Register(correlationID); err != nil {
		return nil, fmt.Errorf("register waiter: %w", err)
	}

	if err = c.publisher.Publish(ctx, c.requestRoutingKey, body, c.requestQueue, correlationID); err != nil {
		c.awaiter.Cancel(correlationID)
		return nil, fmt.Errorf("publish request: %w", err)
	}

	c.log.Debug("request published",
		"request", string(request.Request),
		"correlation_id", correlationID,
	)

	return c.awaiter.Await(ctx, correlationID)
}
