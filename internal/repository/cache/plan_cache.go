package cache

import (
	"context"

	"crm-renewal-be/internal/entity"

	"github.com/google/uuid"
)

// PlanCache holds plan rows looked up while rendering subscriptions. Plans
// change rarely; a stale entry lives at most one TTL.
type PlanCache interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Plan, bool)
	Set(ctx context.Context, plan *entity.Plan)
}
