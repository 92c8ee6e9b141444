package bet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewBetRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

func (br *Repository) Create(ctx context.Context, bet *models.Bet) (int64, error) {
	const op = "repository.bet.Create"

	const query = `
		INSERT INTO "bets" (event_id, bet_prediction, coefficient, amount, possible_winning, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
	`

	var betID int64

	row := br.db.QueryRowContext(ctx, query,
		bet.EventID,
		bet.Prediction,
		bet.Coefficient,
		bet.Amount,
		bet.PossibleWinning,
		bet.Status,
	)
	if err := row.Scan(&betID); err != nil {
		br.log.Error(op, "error", err.Error())
		return 0, fmt.Errorf("%s: scan result: %w", op, err)
	}

	return betID, nil
}

func (br *Repository) Bets(ctx context.Context, offset, limit int) ([]models.Bet, error) {
	const op = "repository.bet.Bets"

	const query = `
		SELECT id, event_id, bet_prediction, coefficient, amount, possible_winning, status
			FROM "bets"
			ORDER BY id
			OFFSET $1 LIMIT $2
	`

	bets := make([]models.Bet, 0, limit)

	if err := br.db.SelectContext(ctx, &bets, query, offset, limit); err != nil {
		br.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return bets, nil
}

func (br *Repository) Bet(ctx context.Context, betID int64) (*models.Bet, error) {
	const op = "repository.bet.Bet"

	const query = `
		SELECT id, event_id, bet_prediction, coefficient, amount, possible_winning, status
			FROM "bets"
			WHERE id = $1
	`

	var bet models.Bet

	if err := br.db.GetContext(ctx, &bet, query, betID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrBetNotFound
		}

		br.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return &bet, nil
}

// Settle marks every bet on the event with the winning prediction WON and
// every other bet on the event LOST, in one transaction. Either both
// updates land or neither does.
func (br *Repository) Settle(ctx context.Context, eventID int64, winner models.BetPrediction) (err error) {
	const op = "repository.bet.Settle"

	tx, err := br.db.BeginTx(ctx, nil)
	if err != nil {
		br.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				br.log.Error(op, "rollback error", rollBackErr.Error())
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const wonQuery = `UPDATE "bets" SET status = $1 WHERE event_id = $2 AND bet_prediction = $3`

	if _, err = tx.ExecContext(ctx, wonQuery, models.BetStatusWon, eventID, winner); err != nil {
		br.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: update won bets: %w", op, err)
	}

	const lostQuery = `UPDATE "bets" SET status = $1 WHERE event_id = $2 AND bet_prediction <> $3`

	if _, err = tx.ExecContext(ctx, lostQuery, models.BetStatusLost, eventID, winner); err != nil {
		br.log.Error(op, "error", err.Error())
		return fmt.Errorf("%s: update lost bets: %w", op, err)
	}

	return tx.Commit()
}
