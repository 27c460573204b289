package renewal

import (
	"context"
	"testing"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/implementation"
	"crm-renewal-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSubscription(t *testing.T, db *gorm.DB, adminId, planId uuid.UUID, status entity.SubscriptionStatus, starts time.Time, ends, cancelled *time.Time) *model.Subscription {
	t.Helper()
	sub := &model.Subscription{
		AdminId:     adminId,
		PlanId:      planId,
		Status:      string(status),
		StartsAt:    starts,
		EndsAt:      ends,
		CancelledAt: cancelled,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func statusOf(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var sub model.Subscription
	require.NoError(t, db.First(&sub, "id = ?", id).Error)
	return sub.Status
}

func TestExpiryScanner_Sweep(t *testing.T) {
	db := testutil.NewTestDB(t)
	tenant := testutil.SeedTenant(t, db, "Northwind", "Backup Suite")
	plan := &model.Plan{Name: "Pro", Price: 49}
	require.NoError(t, db.Create(plan).Error)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	admin := tenant.Admin.Id

	endedActive := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusActive, date(2025, 1, 1), timePtr(date(2025, 2, 1)), nil)
	endsNow := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusActive, date(2025, 1, 1), timePtr(now), nil)
	endedPending := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusPending, date(2025, 1, 1), timePtr(date(2025, 2, 1)), nil)
	cancelled := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusActive, date(2025, 1, 1), timePtr(date(2025, 2, 1)), timePtr(date(2025, 1, 15)))
	running := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusActive, date(2025, 1, 1), timePtr(date(2025, 4, 1)), nil)
	openEnded := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusActive, date(2025, 1, 1), nil, nil)
	// stored status says canceled but nothing was ever cancelled
	staleCanceled := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusCanceled, date(2025, 1, 1), timePtr(date(2025, 2, 1)), nil)
	cancelledStatus := seedSubscription(t, db, admin, plan.Id, entity.SubscriptionStatusCanceled, date(2025, 1, 1), timePtr(date(2025, 2, 1)), timePtr(date(2025, 1, 20)))

	scanner := NewExpiryScanner(implementation.NewSubscriptionRepository(db), logger.NewNopLogger())

	count, err := scanner.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	assert.Equal(t, "expired", statusOf(t, db, endedActive.Id))
	assert.Equal(t, "expired", statusOf(t, db, endsNow.Id))
	assert.Equal(t, "expired", statusOf(t, db, endedPending.Id))
	assert.Equal(t, "active", statusOf(t, db, cancelled.Id))
	assert.Equal(t, "active", statusOf(t, db, running.Id))
	assert.Equal(t, "active", statusOf(t, db, openEnded.Id))
	assert.Equal(t, "expired", statusOf(t, db, staleCanceled.Id))
	assert.Equal(t, "canceled", statusOf(t, db, cancelledStatus.Id))

	count, err = scanner.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, count, "a second sweep finds nothing to expire")
}

type failingMarker struct{}

func (failingMarker) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, assert.AnError
}

func TestExpiryScanner_StoreFailure(t *testing.T) {
	_, err := NewExpiryScanner(failingMarker{}, logger.NewNopLogger()).Sweep(context.Background(), time.Now())

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, assert.AnError)
}
