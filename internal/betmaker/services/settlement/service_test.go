package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betSettlerMock struct {
	mock.Mock
}

func (m *betSettlerMock) Settle(ctx context.Context, eventID int64, winner models.BetPrediction) error {
	args := m.Called(ctx, eventID, winner)
	return args.Error(0)
}

type betCacheFake struct {
	purges int
}

func (c *betCacheFake) Purge() {
	c.purges++
}

func TestApplyFirstTeamWon(t *testing.T) {
	settler := &betSettlerMock{}
	settler.On("Settle", mock.Anything, int64(3), models.PredictionFirstTeamWin).Return(nil)

	service := New(logger.SetupLogger("local"), &betCacheFake{}, settler)

	err := service.Apply(context.Background(), models.StatusUpdateEvent{
		EventID:   3,
		NewStatus: models.EventStatusFirstTeamWon,
	})
	require.NoError(t, err)

	settler.AssertExpectations(t)
}

func TestApplySecondTeamWon(t *testing.T) {
	settler := &betSettlerMock{}
	settler.On("Settle", mock.Anything, int64(3), models.PredictionSecondTeamWin).Return(nil)

	service := New(logger.SetupLogger("local"), &betCacheFake{}, settler)

	err := service.Apply(context.Background(), models.StatusUpdateEvent{
		EventID:   3,
		NewStatus: models.EventStatusSecondTeamWon,
	})
	require.NoError(t, err)

	settler.AssertExpectations(t)
}

func TestApplyEvictsCachedBets(t *testing.T) {
	settler := &betSettlerMock{}
	settler.On("Settle", mock.Anything, int64(3), models.PredictionFirstTeamWin).Return(nil)

	cache := &betCacheFake{}

	service := New(logger.SetupLogger("local"), cache, settler)

	err := service.Apply(context.Background(), models.StatusUpdateEvent{
		EventID:   3,
		NewStatus: models.EventStatusFirstTeamWon,
	})
	require.NoError(t, err)

	// Cached bets carry their pre-settlement status; after the settle they
	// must be reloaded from the store.
	require.Equal(t, 1, cache.purges)
}

func TestApplyPropagatesSettleError(t *testing.T) {
	settleErr := errors.New("tx deadlock")

	settler := &betSettlerMock{}
	settler.On("Settle", mock.Anything, int64(3), models.PredictionFirstTeamWin).Return(settleErr)

	cache := &betCacheFake{}

	service := New(logger.SetupLogger("local"), cache, settler)

	err := service.Apply(context.Background(), models.StatusUpdateEvent{
		EventID:   3,
		NewStatus: models.EventStatusFirstTeamWon,
	})
	require.ErrorIs(t, err, settleErr)

	// The store still holds the old statuses, so the cache stays valid.
	require.Zero(t, cache.purges)
}
