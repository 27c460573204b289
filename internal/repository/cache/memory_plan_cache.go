package cache

import (
	"context"
	"time"

	"crm-renewal-be/internal/entity"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type MemoryPlanCache struct {
	cache *gocache.Cache
}

// NewMemoryPlanCache keeps plans in process, purging expired ones every ttl.
func NewMemoryPlanCache(ttl time.Duration) *MemoryPlanCache {
	return &MemoryPlanCache{
		cache: gocache.New(ttl, ttl),
	}
}

func (c *MemoryPlanCache) Get(ctx context.Context, id uuid.UUID) (*entity.Plan, bool) {
	if x, found := c.cache.Get(id.String()); found {
		plan := *x.(*entity.Plan)
		return &plan, true
	}
	return nil, false
}

func (c *MemoryPlanCache) Set(ctx context.Context, plan *entity.Plan) {
	stored := *plan
	c.cache.Set(plan.Id.String(), &stored, gocache.DefaultExpiration)
}
