package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 30 * time.Second

// BalanceCache is a redis-backed materialized view of wallet balances.
// The ledger stays the source of truth: reads fall through to the summed
// ledger on a miss, and every ledger write invalidates the key. The TTL
// bounds staleness if an invalidation is lost.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewBalanceCache creates a balance cache on an existing redis client
func NewBalanceCache(client *redis.Client, ttl time.Duration, logger *logger.Logger) *BalanceCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &BalanceCache{client: client, ttl: ttl, logger: logger}
}

func balanceKey(userID int64, fundType domain.FundType) string {
	return fmt.Sprintf("wallet:balance:%d:%s", userID, fundType)
}

// Get returns the cached balance and whether it was present
func (c *BalanceCache) Get(ctx context.Context, userID int64, fundType domain.FundType) (int64, bool) {
	val, err := c.client.Get(ctx, balanceKey(userID, fundType)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Balance cache read failed", zap.Int64("userID", userID), zap.Error(err))
		}
		return 0, false
	}

	balance, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.logger.Warn("Balance cache holds invalid value", zap.String("value", val))
		return 0, false
	}
	return balance, true
}

// Set stores a freshly summed balance
func (c *BalanceCache) Set(ctx context.Context, userID int64, fundType domain.FundType, balance int64) {
	if err := c.client.Set(ctx, balanceKey(userID, fundType), strconv.FormatInt(balance, 10), c.ttl).Err(); err != nil {
		c.logger.Warn("Balance cache write failed", zap.Int64("userID", userID), zap.Error(err))
	}
}

// Invalidate drops the cached balance after a ledger write
func (c *BalanceCache) Invalidate(ctx context.Context, userID int64, fundType domain.FundType) {
	if err := c.client.Del(ctx, balanceKey(userID, fundType)).Err(); err != nil {
		c.logger.Warn("Balance cache invalidation failed", zap.Int64("userID", userID), zap.Error(err))
	}
}
