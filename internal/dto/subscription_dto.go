package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanSummary struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Duration string    `json:"duration"`
	Price    float64   `json:"price"`
}

type SubscriptionResponse struct {
	Id          uuid.UUID    `json:"id"`
	PlanId      uuid.UUID    `json:"plan_id"`
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	StartsAt    time.Time    `json:"starts_at"`
	EndsAt      *time.Time   `json:"ends_at"`
	CancelledAt *time.Time   `json:"cancelled_at"`
	RenewedAt   *time.Time   `json:"renewed_at"`
	Plan        *PlanSummary `json:"plan"`
}

type ExpirySweepResponse struct {
	Expired int64     `json:"expired"`
	SweptAt time.Time `json:"swept_at"`
}
