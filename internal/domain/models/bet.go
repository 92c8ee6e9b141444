package models

import "github.com/shopspring/decimal"

type BetStatus string

const (
	BetStatusNotPlayed BetStatus = "NOT_PLAYED"
	BetStatusWon       BetStatus = "WON"
	BetStatusLost      BetStatus = "LOST"
)

type BetPrediction string

const (
	PredictionFirstTeamWin  BetPrediction = "FIRST_TEAM_WIN"
	PredictionSecondTeamWin BetPrediction = "SECOND_TEAM_WIN"
)

// Bet is owned by the bet-maker store. The coefficient and the possible
// winning are frozen at creation time; status moves from NOT_PLAYED to WON
// or LOST exactly once, driven by a StatusUpdateEvent for its event.
type Bet struct {
	ID              int64           `json:"id" db:"id"`
	EventID         int64           `json:"event_id" db:"event_id"`
	Prediction      BetPrediction   `json:"bet_prediction" db:"bet_prediction"`
	Coefficient     decimal.Decimal `json:"coefficient" db:"coefficient"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PossibleWinning decimal.Decimal `json:"possible_winning" db:"possible_winning"`
	Status          BetStatus       `json:"status" db:"status"`
}

// WinningPrediction derives the prediction that wins when the event ends
// with the given status. Any terminal status other than FIRST_TEAM_WON
// means the second team took it.
func WinningPrediction(status EventStatus) BetPrediction {
	if status == EventStatusFirstTeamWon {
		return PredictionFirstTeamWin
	}

	return PredictionSecondTeamWin
}
