package update

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
)

var (
	errInvalidCoefficient = errors.New("coefficients must be greater than zero with at most two decimal places")
	errInvalidStatus      = errors.New("invalid status")
	errInvalidEventID     = errors.New("invalid event id")
)

var validate = validator.New()

// UpdateEventRequest is a partial update: absent fields keep their stored
// values.
type UpdateEventRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	CoefFirstTeam  *decimal.Decimal `json:"coef_1st_team_win"`
	CoefSecondTeam *decimal.Decimal `json:"coef_2nd_team_win"`
	Deadline       *time.Time       `json:"deadline"`
	Status         *string          `json:"status" validate:"omitempty,oneof=NOT_FINISHED FIRST_TEAM_WON SECOND_TEAM_WON"`
}

func (req *UpdateEventRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return errInvalidStatus
		}

		return err
	}

	for _, coef := range []*decimal.Decimal{req.CoefFirstTeam, req.CoefSecondTeam} {
		if coef != nil && (!coef.IsPositive() || coef.Exponent() < -2) {
			return errInvalidCoefficient
		}
	}

	return nil
}

func (req *UpdateEventRequest) toDTO() models.EventUpdate {
	upd := models.EventUpdate{
		Name:           req.Name,
		Description:    req.Description,
		CoefFirstTeam:  req.CoefFirstTeam,
		CoefSecondTeam: req.CoefSecondTeam,
		Deadline:       req.Deadline,
	}

	if req.Status != nil {
		status := models.EventStatus(*req.Status)
		upd.Status = &status
	}

	return upd
}
