package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventUpdaterMock struct {
	mock.Mock
}

func (m *eventUpdaterMock) Event(ctx context.Context, eventID int64) (*models.Event, error) {
	args := m.Called(ctx, eventID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *eventUpdaterMock) Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error) {
	args := m.Called(ctx, eventID, upd)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Event), args.Error(1)
}

type statusNotifierMock struct {
	mock.Mock
}

func (m *statusNotifierMock) Notify(ctx context.Context, eventID int64, newStatus models.EventStatus) error {
	args := m.Called(ctx, eventID, newStatus)
	return args.Error(0)
}

func status(s models.EventStatus) *models.EventStatus { return &s }

func TestUpdateTerminalStatusForcesDeadlineAndNotifies(t *testing.T) {
	updater := &eventUpdaterMock{}
	updater.On("Event", mock.Anything, int64(5)).
		Return(&models.Event{ID: 5, Status: models.EventStatusNotFinished}, nil)

	var applied models.EventUpdate
	updater.On("Update", mock.Anything, int64(5), mock.Anything).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(models.EventUpdate)
		}).
		Return(&models.Event{ID: 5, Status: models.EventStatusFirstTeamWon}, nil)

	notifier := &statusNotifierMock{}
	notifier.On("Notify", mock.Anything, int64(5), models.EventStatusFirstTeamWon).Return(nil)

	service := New(logger.SetupLogger("local"), updater, notifier)

	updated, err := service.Update(context.Background(), 5, models.EventUpdate{
		Status: status(models.EventStatusFirstTeamWon),
	})
	require.NoError(t, err)
	require.Equal(t, models.EventStatusFirstTeamWon, updated.Status)

	require.NotNil(t, applied.Deadline)
	require.WithinDuration(t, time.Now().UTC(), *applied.Deadline, time.Minute)

	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestUpdateUnchangedStatusDoesNotNotify(t *testing.T) {
	updater := &eventUpdaterMock{}
	updater.On("Event", mock.Anything, int64(5)).
		Return(&models.Event{ID: 5, Status: models.EventStatusNotFinished}, nil)
	updater.On("Update", mock.Anything, int64(5), mock.Anything).
		Return(&models.Event{ID: 5, Status: models.EventStatusNotFinished}, nil)

	notifier := &statusNotifierMock{}

	service := New(logger.SetupLogger("local"), updater, notifier)

	_, err := service.Update(context.Background(), 5, models.EventUpdate{
		Status: status(models.EventStatusNotFinished),
	})
	require.NoError(t, err)

	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateNonStatusFieldsDoNotNotify(t *testing.T) {
	updater := &eventUpdaterMock{}
	updater.On("Event", mock.Anything, int64(5)).
		Return(&models.Event{ID: 5, Status: models.EventStatusNotFinished}, nil)

	var applied models.EventUpdate
	updater.On("Update", mock.Anything, int64(5), mock.Anything).
		Run(func(args mock.Arguments) {
			applied = args.Get(2).(models.EventUpdate)
		}).
		Return(&models.Event{ID: 5, Name: "renamed", Status: models.EventStatusNotFinished}, nil)

	notifier := &statusNotifierMock{}

	service := New(logger.SetupLogger("local"), updater, notifier)

	name := "renamed"
	_, err := service.Update(context.Background(), 5, models.EventUpdate{Name: &name})
	require.NoError(t, err)

	require.Nil(t, applied.Deadline)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateNotifyFailureIsSwallowed(t *testing.T) {
	updater := &eventUpdaterMock{}
	updater.On("Event", mock.Anything, int64(5)).
		Return(&models.Event{ID: 5, Status: models.EventStatusNotFinished}, nil)
	updater.On("Update", mock.Anything, int64(5), mock.Anything).
		Return(&models.Event{ID: 5, Status: models.EventStatusSecondTeamWon}, nil)

	notifier := &statusNotifierMock{}
	notifier.On("Notify", mock.Anything, int64(5), models.EventStatusSecondTeamWon).
		Return(errors.New("broker unreachable"))

	service := New(logger.SetupLogger("local"), updater, notifier)

	updated, err := service.Update(context.Background(), 5, models.EventUpdate{
		Status: status(models.EventStatusSecondTeamWon),
	})
	require.NoError(t, err)
	require.Equal(t, models.EventStatusSecondTeamWon, updated.Status)
}

func TestUpdateUnknownEvent(t *testing.T) {
	updater := &eventUpdaterMock{}
	updater.On("Event", mock.Anything, int64(99)).Return(nil, internalErrors.ErrEventNotFound)

	notifier := &statusNotifierMock{}

	service := New(logger.SetupLogger("local"), updater, notifier)

	_, err := service.Update(context.Background(), 99, models.EventUpdate{
		Status: status(models.EventStatusFirstTeamWon),
	})
	require.ErrorIs(t, err, internalErrors.ErrEventNotFound)

	updater.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
