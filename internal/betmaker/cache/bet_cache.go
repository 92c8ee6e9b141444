package cache

import (
	"github.com/thistlewind/bet_services_system/internal/domain/models"
	"github.com/thistlewind/bet_services_system/pkg/logger"
)

// CacheI is satisfied by hashicorp's expirable LRU.
type CacheI[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
	Purge()
}

// BetCache keeps recently touched bets so bet-by-id reads skip the store.
type BetCache struct {
	cache CacheI[int64, *models.Bet]
	log   logger.Logger
}

func NewBetCache(cache CacheI[int64, *models.Bet], log logger.Logger) *BetCache {
	return &BetCache{
		cache: cache,
		log:   log,
	}
}

func (c *BetCache) Add(key int64, value *models.Bet) (evicted bool) {
	return c.cache.Add(key, value)
}

func (c *BetCache) Get(key int64) (value *models.Bet, ok bool) {
	return c.cache.Get(key)
}

// Purge empties the cache. Settlement flips bet statuses in the store by
// event id, and the cache is keyed by bet id, so the settled entries cannot
// be targeted individually.
func (c *BetCache) Purge() {
	c.cache.Purge()
}
