package create

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/brokers/rabbitmq"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betCreatorMock struct {
	mock.Mock
}

func (m *betCreatorMock) Create(ctx context.Context, bet *models.Bet) (*models.Bet, error) {
	args := m.Called(ctx, bet)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Bet), args.Error(1)
}

func performCreate(t *testing.T, creator *betCreatorMock, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(logger.SetupLogger("local"), creator)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/bets/", strings.NewReader(body))

	handler.Create(recorder, request)

	return recorder
}

const validBody = `{"event_id":1,"bet_prediction":"FIRST_TEAM_WIN","amount":"100.00"}`

func TestCreateHandlerCreated(t *testing.T) {
	creator := &betCreatorMock{}
	creator.On("Create", mock.Anything, mock.Anything).
		Return(&models.Bet{ID: 15, EventID: 1, Status: models.BetStatusNotPlayed}, nil)

	recorder := performCreate(t, creator, validBody)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var created models.Bet
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.Equal(t, int64(15), created.ID)
}

func TestCreateHandlerEventNotFound(t *testing.T) {
	creator := &betCreatorMock{}
	creator.On("Create", mock.Anything, mock.Anything).Return(nil, internalErrors.ErrEventNotFound)

	recorder := performCreate(t, creator, validBody)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateHandlerProviderTimeout(t *testing.T) {
	creator := &betCreatorMock{}
	creator.On("Create", mock.Anything, mock.Anything).Return(nil, rabbitmq.ErrResponseTimeout)

	recorder := performCreate(t, creator, validBody)

	require.Equal(t, http.StatusGatewayTimeout, recorder.Code)
}

func TestCreateHandlerInvalidBody(t *testing.T) {
	creator := &betCreatorMock{}

	recorder := performCreate(t, creator, `{"event_id":1,"bet_prediction":"DRAW","amount":"100.00"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateHandlerMalformedJSON(t *testing.T) {
	creator := &betCreatorMock{}

	recorder := performCreate(t, creator, `not json`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
