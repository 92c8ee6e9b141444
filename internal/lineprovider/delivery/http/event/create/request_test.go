package create

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateEventRequestValidate(t *testing.T) {
	deadline := time.Now().UTC().Add(time.Hour)

	tests := []struct {
		name    string
		request CreateEventRequest
		wantErr error
	}{
		{
			name: "valid minimal request",
			request: CreateEventRequest{
				Name:     "first vs second",
				Deadline: timePtr(deadline),
			},
		},
		{
			name: "valid full request",
			request: CreateEventRequest{
				Name:           "first vs second",
				Description:    "friendly",
				CoefFirstTeam:  decimalPtr("1.85"),
				CoefSecondTeam: decimalPtr("2.05"),
				Deadline:       timePtr(deadline),
				Status:         "NOT_FINISHED",
			},
		},
		{
			name: "missing name",
			request: CreateEventRequest{
				Deadline: timePtr(deadline),
			},
			wantErr: errMissingName,
		},
		{
			name: "missing deadline",
			request: CreateEventRequest{
				Name: "first vs second",
			},
			wantErr: errMissingDeadline,
		},
		{
			name: "unknown status",
			request: CreateEventRequest{
				Name:     "first vs second",
				Deadline: timePtr(deadline),
				Status:   "POSTPONED",
			},
			wantErr: errInvalidStatus,
		},
		{
			name: "non-positive coefficient",
			request: CreateEventRequest{
				Name:          "first vs second",
				CoefFirstTeam: decimalPtr("0"),
				Deadline:      timePtr(deadline),
			},
			wantErr: errInvalidCoefficient,
		},
		{
			name: "coefficient with too many decimal places",
			request: CreateEventRequest{
				Name:           "first vs second",
				CoefSecondTeam: decimalPtr("1.855"),
				Deadline:       timePtr(deadline),
			},
			wantErr: errInvalidCoefficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.validate()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateEventRequestToDTODefaults(t *testing.T) {
	deadline := time.Now().UTC().Add(time.Hour)

	request := CreateEventRequest{
		Name:     "first vs second",
		Deadline: timePtr(deadline),
	}

	event := request.toDTO()

	require.Equal(t, "first vs second", event.Name)
	require.True(t, decimal.RequireFromString("1.50").Equal(event.CoefFirstTeam))
	require.True(t, decimal.RequireFromString("1.50").Equal(event.CoefSecondTeam))
	require.Equal(t, deadline, event.Deadline)
	require.Equal(t, models.EventStatusNotFinished, event.Status)
}

func TestCreateEventRequestToDTOExplicitValues(t *testing.T) {
	deadline := time.Now().UTC().Add(time.Hour)

	request := CreateEventRequest{
		Name:           "first vs second",
		CoefFirstTeam:  decimalPtr("1.85"),
		CoefSecondTeam: decimalPtr("2.05"),
		Deadline:       timePtr(deadline),
		Status:         "FIRST_TEAM_WON",
	}

	event := request.toDTO()

	require.True(t, decimal.RequireFromString("1.85").Equal(event.CoefFirstTeam))
	require.True(t, decimal.RequireFromString("2.05").Equal(event.CoefSecondTeam))
	require.Equal(t, models.EventStatusFirstTeamWon, event.Status)
}
