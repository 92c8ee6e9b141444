package get

import (
	"context"
	"fmt"

	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

type betGetter interface {
	Bets(ctx context.Context, offset, limit int) ([]models.Bet, error)
	Bet(ctx context.Context, betID int64) (*models.Bet, error)
}

type betCache interface {
	Get(key int64) (value *models.Bet, ok bool)
	Add(key int64, value *models.Bet) (evicted bool)
}

type BetRetrievalService struct {
	log   logger.Logger
	cache betCache

	betGetter betGetter
}

func New(log logger.Logger, cache betCache, betGetter betGetter) *BetRetrievalService {
	return &BetRetrievalService{
		log:       log,
		cache:     cache,
		betGetter: betGetter,
	}
}

func (bs *BetRetrievalService) Bets(ctx context.Context, offset, limit int) ([]models.Bet, error) {
	const op = "services.bet.Bets"

	bets, err := bs.betGetter.Bets(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bets, nil
}

func (bs *BetRetrievalService) BetByID(ctx context.Context, betID int64) (*models.Bet, error) {
	const op = "services.bet.BetByID"

	if bet, ok := bs.cache.Get(betID); ok && bet != nil {
		bs.log.DebugContext(ctx, op, "cache hit", betID)
		return bet, nil
	}

	bet, err := bs.betGetter.Bet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = bs.cache.Add(betID, bet)

	return bet, nil
}
