package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusNotFinished   EventStatus = "NOT_FINISHED"
	EventStatusFirstTeamWon  EventStatus = "FIRST_TEAM_WON"
	EventStatusSecondTeamWon EventStatus = "SECOND_TEAM_WON"
)

func (s EventStatus) Terminal() bool {
	return s == EventStatusFirstTeamWon || s == EventStatusSecondTeamWon
}

// Event is owned by the line-provider store. Once the status leaves
// NOT_FINISHED the deadline is forced to the transition time, closing the
// event to new bets.
type Event struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Description    string          `json:"description" db:"description"`
	CoefFirstTeam  decimal.Decimal `json:"coef_1st_team_win" db:"coef_1st_team_win"`
	CoefSecondTeam decimal.Decimal `json:"coef_2nd_team_win" db:"coef_2nd_team_win"`
	Timestamp      time.Time       `json:"timestamp" db:"timestamp"`
	Deadline       time.Time       `json:"deadline" db:"deadline"`
	Status         EventStatus     `json:"status" db:"status"`
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Name           *string
	Description    *string
	CoefFirstTeam  *decimal.Decimal
	CoefSecondTeam *decimal.Decimal
	Deadline       *time.Time
	Status         *EventStatus
}
