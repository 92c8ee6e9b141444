package create

import (
	"context"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type eventDetailProvider interface {
	AvailableEventDetail(ctx context.Context, eventID int64) (*models.Event, error)
}

type betCreator interface {
	Create(ctx context.Context, bet *models.Bet) (int64, error)
}

type betCache interface {
	Add(key int64, value *models.Bet) (evicted bool)
}

type BetCreationService struct {
	log   logger.Logger
	cache betCache

	provider   eventDetailProvider
	betCreator betCreator
}

func New(
	log logger.Logger,
	cache betCache,
	provider eventDetailProvider,
	betCreator betCreator,
) *BetCreationService {
	return &BetCreationService{
		log:        log,
		cache:      cache,
		provider:   provider,
		betCreator: betCreator,
	}
}

// Create looks the event up through the correlated request/response
// round-trip, freezes the coefficient the provider quotes for the chosen
// prediction and stores the bet as NOT_PLAYED. A provider error payload
// surfaces as ErrEventNotFound; a missing response surfaces as the
// correlator's timeout.
func (bs *BetCreationService) Create(ctx context.Context, bet *models.Bet) (*models.Bet, error) {
	const op = "services.bet.Create"

	event, err := bs.provider.AvailableEventDetail(ctx, bet.EventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bet.Coefficient = event.CoefFirstTeam
	if bet.Prediction == models.PredictionSecondTeamWin {
		bet.Coefficient = event.CoefSecondTeam
	}

	bet.PossibleWinning = bet.Amount.Mul(bet.Coefficient)
	bet.Status = models.BetStatusNotPlayed

	betID, err := bs.betCreator.Create(ctx, bet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bet.ID = betID

	_ = bs.cache.Add(betID, bet)

	bs.log.InfoContext(ctx, op, "bet_id", betID, "event_id", bet.EventID)

	return bet, nil
}
