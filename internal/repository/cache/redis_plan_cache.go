package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "crm:plan:"

// RedisPlanCache shares plan lookups between replicas. Redis errors are
// logged and treated as misses.
type RedisPlanCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisPlanCache(rdb *redis.Client, ttl time.Duration, logger logger.ILogger) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *RedisPlanCache) Get(ctx context.Context, id uuid.UUID) (*entity.Plan, bool) {
	raw, err := c.rdb.Get(ctx, planKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Plan cache read failed", map[string]interface{}{
				"planId": id.String(),
				"error":  err.Error(),
			})
		}
		return nil, false
	}

	var plan entity.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false
	}
	return &plan, true
}

func (c *RedisPlanCache) Set(ctx context.Context, plan *entity.Plan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, planKeyPrefix+plan.Id.String(), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Plan cache write failed", map[string]interface{}{
			"planId": plan.Id.String(),
			"error":  err.Error(),
		})
	}
}
