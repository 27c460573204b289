package cache

import (
	"context"
	"testing"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPlanCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPlanCache(time.Minute)
	plan := &entity.Plan{Id: uuid.New(), Name: "Pro", Duration: "1 month", Price: 49}

	_, ok := c.Get(ctx, plan.Id)
	assert.False(t, ok)

	c.Set(ctx, plan)
	plan.Name = "mutated after caching"

	got, ok := c.Get(ctx, plan.Id)
	require.True(t, ok)
	assert.Equal(t, "Pro", got.Name)
}

func TestRedisPlanCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	c := NewRedisPlanCache(rdb, time.Minute, logger.NewNopLogger())
	plan := &entity.Plan{Id: uuid.New(), Name: "Pro", Duration: "1 month", Price: 49}

	_, ok := c.Get(ctx, plan.Id)
	assert.False(t, ok)

	c.Set(ctx, plan)
	assert.True(t, mr.Exists(planKeyPrefix+plan.Id.String()))

	got, ok := c.Get(ctx, plan.Id)
	require.True(t, ok)
	assert.Equal(t, *plan, *got)

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, plan.Id)
	assert.False(t, ok, "entry expires after the ttl")
}

func TestRedisPlanCache_UnavailableIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	c := NewRedisPlanCache(rdb, time.Minute, logger.NewNopLogger())
	c.Set(context.Background(), &entity.Plan{Id: uuid.New()})

	_, ok := c.Get(context.Background(), uuid.New())
	assert.False(t, ok)
}
