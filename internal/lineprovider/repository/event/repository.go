package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	internalErrors "github.com/thistlewind/bet_services_system/internal/lib/errors"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

const eventColumns = `id, name, description, coef_1st_team_win, coef_2nd_team_win, timestamp, deadline, status`

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewEventRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

func (er *Repository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	const op = "repository.event.Create"

	query := `
		INSERT INTO "events" (name, description, coef_1st_team_win, coef_2nd_team_win, timestamp, deadline, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + eventColumns

	var created models.Event

	if err := er.db.GetContext(ctx, &created, query,
		event.Name,
		event.Description,
		event.CoefFirstTeam,
		event.CoefSecondTeam,
		event.Timestamp,
		event.Deadline,
		event.Status,
	); err != nil {
		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return &created, nil
}

func (er *Repository) Events(ctx context.Context, offset, limit int) ([]models.Event, error) {
	const op = "repository.event.Events"

	query := `SELECT ` + eventColumns + ` FROM "events" ORDER BY id OFFSET $1 LIMIT $2`

	events := make([]models.Event, 0, limit)

	if err := er.db.SelectContext(ctx, &events, query, offset, limit); err != nil {
		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return events, nil
}

func (er *Repository) Event(ctx context.Context, eventID int64) (*models.Event, error) {
	const op = "repository.event.Event"

	query := `SELECT ` + eventColumns + ` FROM "events" WHERE id = $1`

	var event models.Event

	if err := er.db.GetContext(ctx, &event, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrEventNotFound
		}

		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return &event, nil
}

// AvailableEvents returns events still open for betting: deadline strictly
// in the future, ordered by id.
func (er *Repository) AvailableEvents(ctx context.Context) ([]models.Event, error) {
	const op = "repository.event.AvailableEvents"

	query := `SELECT ` + eventColumns + ` FROM "events" WHERE deadline > NOW() ORDER BY id`

	// Never nil: an empty list must reach the wire as [], not null.
	events := make([]models.Event, 0)

	if err := er.db.SelectContext(ctx, &events, query); err != nil {
		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return events, nil
}

func (er *Repository) AvailableEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	const op = "repository.event.AvailableEvent"

	query := `SELECT ` + eventColumns + ` FROM "events" WHERE id = $1 AND deadline > NOW()`

	var event models.Event

	if err := er.db.GetContext(ctx, &event, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrEventNotFound
		}

		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return &event, nil
}

// Update applies the non-nil fields of the partial update and returns the
// updated row. ErrEventNotFound when no row matches the id.
func (er *Repository) Update(ctx context.Context, eventID int64, upd models.EventUpdate) (*models.Event, error) {
	const op = "repository.event.Update"

	setClauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)

	addClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		addClause("name", *upd.Name)
	}
	if upd.Description != nil {
		addClause("description", *upd.Description)
	}
	if upd.CoefFirstTeam != nil {
		addClause("coef_1st_team_win", *upd.CoefFirstTeam)
	}
	if upd.CoefSecondTeam != nil {
		addClause("coef_2nd_team_win", *upd.CoefSecondTeam)
	}
	if upd.Deadline != nil {
		addClause("deadline", *upd.Deadline)
	}
	if upd.Status != nil {
		addClause("status", *upd.Status)
	}

	if len(setClauses) == 0 {
		return er.Event(ctx, eventID)
	}

	args = append(args, eventID)

	query := fmt.Sprintf(`UPDATE "events" SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), eventColumns)

	var updated models.Event

	if err := er.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrEventNotFound
		}

		er.log.Error(op, "error", err.Error())
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	return &updated, nil
}
