package app

import (
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/cache"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitBalanceCache creates the redis-backed balance cache. An empty redis
// address disables caching; wallet reads then always sum the ledger.
func (a *application) InitBalanceCache(log *logger.Logger) *cache.BalanceCache {
	if a.config.Redis.Addr == "" {
		log.Info("Balance cache disabled, no redis address configured")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})

	log.Info("Balance cache enabled", zap.String("addr", a.config.Redis.Addr))
	return cache.NewBalanceCache(client, a.config.Redis.TTL, log)
}
