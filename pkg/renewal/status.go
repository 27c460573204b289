package renewal

import (
	"context"
	"fmt"
	"math"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/logger"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// StatusWriter persists a reconciled subscription status.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error
}

// DeriveStatus computes a subscription's status from its temporal fields.
// First match wins: cancelled, not yet started, past its end, active.
func DeriveStatus(sub *entity.Subscription, now time.Time) entity.SubscriptionStatus {
	switch {
	case sub.CancelledAt != nil:
		return entity.SubscriptionStatusCanceled
	case now.Before(sub.StartsAt):
		return entity.SubscriptionStatusPending
	case sub.EndsAt != nil && now.After(*sub.EndsAt):
		return entity.SubscriptionStatusExpired
	default:
		return entity.SubscriptionStatusActive
	}
}

// RemainingMessage describes time left (or elapsed) relative to endsAt. It is
// recomputed on every read and never stored.
func RemainingMessage(status entity.SubscriptionStatus, endsAt *time.Time, now time.Time) string {
	if status == entity.SubscriptionStatusExpired && endsAt != nil {
		return fmt.Sprintf("Expired %d day's ago", wholeDays(now.Sub(*endsAt)))
	}
	if endsAt == nil {
		return "No expiry date set"
	}
	switch n := wholeDays(endsAt.Sub(now)); {
	case n > 0:
		return fmt.Sprintf("%d day's remaining", n)
	case n == 0:
		return "Expires today"
	default:
		return "Expired"
	}
}

func wholeDays(d time.Duration) int {
	return int(math.Floor(float64(d) / float64(day)))
}

// Reconciliation is a subscription after status derivation.
type Reconciliation struct {
	Subscription *entity.Subscription
	Message      string
	Written      bool
}

// StatusResolver treats the stored status as a cache of DeriveStatus.
type StatusResolver struct {
	store  StatusWriter
	logger logger.ILogger
}

func NewStatusResolver(store StatusWriter, logger logger.ILogger) *StatusResolver {
	return &StatusResolver{store: store, logger: logger}
}

// Reconcile derives the status for now, writes it back only when it differs
// from the stored value, and updates sub in place. Calling it again with the
// same sub and now performs no further write.
func (r *StatusResolver) Reconcile(ctx context.Context, sub *entity.Subscription, now time.Time) (*Reconciliation, error) {
	derived := DeriveStatus(sub, now)
	written := false

	if derived != sub.Status {
		if err := r.store.UpdateStatus(ctx, sub.Id, derived); err != nil {
			return nil, storeErr("update subscription status", err)
		}
		r.logger.Debug("SUBSCRIPTION", "Reconciled subscription status", map[string]interface{}{
			"subscriptionId": sub.Id.String(),
			"from":           string(sub.Status),
			"to":             string(derived),
		})
		sub.Status = derived
		written = true
	}

	return &Reconciliation{
		Subscription: sub,
		Message:      RemainingMessage(derived, sub.EndsAt, now),
		Written:      written,
	}, nil
}
