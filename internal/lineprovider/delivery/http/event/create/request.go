package create

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
)

var (
	errMissingName        = errors.New("name is required")
	errMissingDeadline    = errors.New("deadline is required")
	errInvalidCoefficient = errors.New("coefficients must be greater than zero with at most two decimal places")
	errInvalidStatus      = errors.New("invalid status")
)

var (
	validate = validator.New()

	defaultCoefficient = decimal.RequireFromString("1.50")
)

type CreateEventRequest struct {
	Name           string           `json:"name" validate:"required"`
	Description    string           `json:"description"`
	CoefFirstTeam  *decimal.Decimal `json:"coef_1st_team_win"`
	CoefSecondTeam *decimal.Decimal `json:"coef_2nd_team_win"`
	Deadline       *time.Time       `json:"deadline"`
	Status         string           `json:"status" validate:"omitempty,oneof=NOT_FINISHED FIRST_TEAM_WON SECOND_TEAM_WON"`
}

func (req *CreateEventRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				switch fieldErr.Field() {
				case "Name":
					return errMissingName
				case "Status":
					return errInvalidStatus
				}
			}
		}

		return err
	}

	if req.Deadline == nil {
		return errMissingDeadline
	}

	for _, coef := range []*decimal.Decimal{req.CoefFirstTeam, req.CoefSecondTeam} {
		if coef != nil && !validCoefficient(*coef) {
			return errInvalidCoefficient
		}
	}

	return nil
}

func validCoefficient(coef decimal.Decimal) bool {
	return coef.IsPositive() && coef.Exponent() >= -2
}

func (req *CreateEventRequest) toDTO() models.Event {
	event := models.Event{
		Name:           req.Name,
		Description:    req.Description,
		CoefFirstTeam:  defaultCoefficient,
		CoefSecondTeam: defaultCoefficient,
		Deadline:       *req.Deadline,
		Status:         models.EventStatusNotFinished,
	}

	if req.CoefFirstTeam != nil {
		event.CoefFirstTeam = *req.CoefFirstTeam
	}
	if req.CoefSecondTeam != nil {
		event.CoefSecondTeam = *req.CoefSecondTeam
	}
	if req.Status != "" {
		event.Status = models.EventStatus(req.Status)
	}

	return event
}
