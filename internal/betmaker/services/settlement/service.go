package settlement

import (
	"context"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betSettler interface {
	Settle(ctx context.Context, eventID int64, winner models.BetPrediction) error
}

type betCache interface {
	Purge()
}

type SettlementService struct {
	log   logger.Logger
	cache betCache

	betSettler betSettler
}

func New(log logger.Logger, cache betCache, betSettler betSettler) *SettlementService {
	return &SettlementService{
		log:        log,
		cache:      cache,
		betSettler: betSettler,
	}
}

// Apply settles every bet on the updated event: bets predicting the winner
// go WON, the rest go LOST, atomically. FIRST_TEAM_WON means the first-team
// prediction wins; any other status means the second-team prediction wins.
// The bet cache is purged after the settle so bet-by-id reads never serve a
// stale NOT_PLAYED status.
func (ss *SettlementService) Apply(ctx context.Context, update models.StatusUpdateEvent) error {
	const op = "services.settlement.Apply"

	winner := models.WinningPrediction(update.NewStatus)

	if err := ss.betSettler.Settle(ctx, update.EventID, winner); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ss.cache.Purge()

	ss.log.InfoContext(ctx, op,
		"event_id", update.EventID,
		"new_status", string(update.NewStatus),
		"winner", string(winner),
	)

	return nil
}
