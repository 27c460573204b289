// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type Plan struct {
	Id       uuid.UUID
	Name     string
	Duration string // display label, e.g. "1 month"
	Price    float64
}

// Subscription is one tenant's entitlement to a Plan. Status is a cached
// derivation of the temporal fields and is reconciled on read.
type Subscription struct {
	Id          uuid.UUID
	AdminId     uuid.UUID
	PlanId      uuid.UUID
	Status      SubscriptionStatus
	StartsAt    time.Time
	EndsAt      *time.Time
	CancelledAt *time.Time
	RenewedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
