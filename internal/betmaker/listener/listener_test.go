package listener

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type settlerMock struct {
	mock.Mock
}

func (m *settlerMock) Apply(ctx context.Context, update models.StatusUpdateEvent) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func TestHandleAppliesStatusUpdate(t *testing.T) {
	settler := &settlerMock{}
	settler.On("Apply", mock.Anything, models.StatusUpdateEvent{
		EventID:   3,
		NewStatus: models.EventStatusFirstTeamWon,
	}).Return(nil)

	listener := New(logger.SetupLogger("local"), nil, settler, "event_updates_queue", "bet-status-update")

	err := listener.handle(context.Background(), amqp.Delivery{
		Body: []byte(`{"event_id":3,"new_status":"FIRST_TEAM_WON"}`),
	})
	require.NoError(t, err)

	settler.AssertExpectations(t)
}

func TestHandleMalformedUpdate(t *testing.T) {
	settler := &settlerMock{}

	listener := New(logger.SetupLogger("local"), nil, settler, "event_updates_queue", "bet-status-update")

	err := listener.handle(context.Background(), amqp.Delivery{Body: []byte(`not json`)})
	require.Error(t, err)

	settler.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}
