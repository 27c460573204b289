package contract

import (
	"context"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.Plan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)

	// Subscriptions
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error

	// MarkExpired sets status=expired on every subscription without a
	// cancelled_at whose ends_at is at or before now, whatever its stored
	// status, and returns the number of rows changed.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}
