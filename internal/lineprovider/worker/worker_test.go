package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventProviderMock struct {
	mock.Mock
}

func (m *eventProviderMock) AvailableEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *eventProviderMock) AvailableEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	args := m.Called(ctx, eventID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Event), args.Error(1)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, routingKey string, body []byte, queue string, correlationID string) error {
	args := m.Called(ctx, routingKey, body, queue, correlationID)
	return args.Error(0)
}

func newTestWorker(events *eventProviderMock, publisher *publisherMock) *Worker {
	return New(
		logger.SetupLogger("local"),
		nil,
		publisher,
		events,
		"bet_request_queue",
		"bet-request",
		"event_response_queue",
		"event-response",
	)
}

func testEvent(id int64) *models.Event {
	return &models.Event{
		ID:             id,
		Name:           "first vs second",
		CoefFirstTeam:  decimal.RequireFromString("1.80"),
		CoefSecondTeam: decimal.RequireFromString("2.10"),
		Timestamp:      time.Now().UTC().Truncate(time.Second),
		Deadline:       time.Now().UTC().Add(time.Hour).Truncate(time.Second),
		Status:         models.EventStatusNotFinished,
	}
}

func TestDispatchEventDetailRoundTrip(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvent", mock.Anything, int64(1)).Return(testEvent(1), nil)

	w := newTestWorker(events, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_available_event_detail","event_id":1}`))

	var decoded models.Event
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Equal(t, int64(1), decoded.ID)
	require.True(t, decimal.RequireFromString("1.80").Equal(decoded.CoefFirstTeam))

	events.AssertExpectations(t)
}

func TestDispatchEventDetailNotFound(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvent", mock.Anything, int64(42)).Return(nil, internalErrors.ErrEventNotFound)

	w := newTestWorker(events, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_available_event_detail","event_id":42}`))

	errMsg, isErr := models.ResponseError(body)
	require.True(t, isErr)
	require.Equal(t, internalErrors.ErrEventNotFound.Error(), errMsg)
}

func TestDispatchEventDetailStoreFailure(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvent", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	w := newTestWorker(events, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_available_event_detail","event_id":7}`))

	errMsg, isErr := models.ResponseError(body)
	require.True(t, isErr)
	// A failing store must not masquerade as a missing event.
	require.NotEqual(t, internalErrors.ErrEventNotFound.Error(), errMsg)
	require.Equal(t, "error during getting available event occurred", errMsg)
}

func TestDispatchAvailableEvents(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvents", mock.Anything).Return([]models.Event{*testEvent(1), *testEvent(2)}, nil)

	w := newTestWorker(events, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_available_events"}`))

	var decoded []models.Event
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, int64(1), decoded[0].ID)
	require.Equal(t, int64(2), decoded[1].ID)
}

func TestDispatchAvailableEventsEmptyListIsNotNull(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvents", mock.Anything).Return([]models.Event{}, nil)

	w := newTestWorker(events, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_available_events"}`))

	require.Equal(t, "[]", string(body))
}

func TestDispatchUnsupportedRequestKind(t *testing.T) {
	w := newTestWorker(&eventProviderMock{}, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`{"request":"get_odds_history"}`))

	errMsg, isErr := models.ResponseError(body)
	require.True(t, isErr)
	require.Contains(t, errMsg, "unsupported request kind")
}

func TestDispatchMalformedBody(t *testing.T) {
	w := newTestWorker(&eventProviderMock{}, &publisherMock{})

	body := w.dispatch(context.Background(), []byte(`not json`))

	errMsg, isErr := models.ResponseError(body)
	require.True(t, isErr)
	require.Equal(t, "malformed request", errMsg)
}

func TestHandleEchoesInboundCorrelationID(t *testing.T) {
	events := &eventProviderMock{}
	events.On("AvailableEvent", mock.Anything, int64(1)).Return(testEvent(1), nil)

	publisher := &publisherMock{}
	publisher.On("Publish",
		mock.Anything,
		"event-response",
		mock.Anything,
		"event_response_queue",
		"corr-123",
	).Return(nil)

	w := newTestWorker(events, publisher)

	err := w.handle(context.Background(), amqp.Delivery{
		CorrelationId: "corr-123",
		Body:          []byte(`{"request":"get_available_event_detail","event_id":1}`),
	})
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}
