package create

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
)

var (
	errInvalidAmount     = errors.New("amount must be greater than zero with at most two decimal places")
	errInvalidPrediction = errors.New("invalid bet_prediction")
	errInvalidEventID    = errors.New("invalid event_id")
)

var validate = validator.New()

type CreateBetRequest struct {
	EventID    int64           `json:"event_id" validate:"required,gt=0"`
	Prediction string          `json:"bet_prediction" validate:"required,oneof=FIRST_TEAM_WIN SECOND_TEAM_WIN"`
	Amount     decimal.Decimal `json:"amount"`
}

func (req *CreateBetRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				switch fieldErr.Field() {
				case "EventID":
					return errInvalidEventID
				case "Prediction":
					return errInvalidPrediction
				}
			}
		}

		return err
	}

	// Monetary amounts are capped at two decimal places by the bets schema.
	if !req.Amount.IsPositive() || req.Amount.Exponent() < -2 {
		return errInvalidAmount
	}

	return nil
}

func (req *CreateBetRequest) toDTO() models.Bet {
	return models.Bet{
		EventID:    req.EventID,
		Prediction: models.BetPrediction(req.Prediction),
		Amount:     req.Amount,
		Status:     models.BetStatusNotPlayed,
	}
}
