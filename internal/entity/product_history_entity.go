package entity

import (
	"time"

	"github.com/google/uuid"
)

type RenewPeriod string

const (
	RenewPeriodMonthly    RenewPeriod = "monthly"
	RenewPeriodQuarterly  RenewPeriod = "quarterly"
	RenewPeriodHalfYearly RenewPeriod = "half_yearly"
	RenewPeriodYearly     RenewPeriod = "yearly"
	RenewPeriodCustom     RenewPeriod = "custom"
)

// CustomerProductHistory is one purchased-product entitlement of a customer.
// Entries are never deleted; Status=false marks them inactive.
type CustomerProductHistory struct {
	Id           uuid.UUID
	CustomerId   uuid.UUID
	AdminId      uuid.UUID
	ProductId    uuid.UUID
	PurchaseDate time.Time
	ExpiryDate   *time.Time
	RenewalDate  *time.Time
	RenewPeriod  RenewPeriod
	Renewal      bool
	Status       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relations, populated by reminder queries only
	Product  *Product
	Customer *Customer
	Admin    *Admin
}

// Clone returns a copy whose date pointers do not alias the receiver's.
func (h *CustomerProductHistory) Clone() *CustomerProductHistory {
	if h == nil {
		return nil
	}
	c := *h
	c.ExpiryDate = cloneTime(h.ExpiryDate)
	c.RenewalDate = cloneTime(h.RenewalDate)
	return &c
}

// ProductRenewalHistory is an append-only snapshot of a CustomerProductHistory
// entry as it was before an update.
type ProductRenewalHistory struct {
	Id                       uuid.UUID
	CustomerProductHistoryId uuid.UUID
	ProductId                uuid.UUID
	PurchaseDate             time.Time
	ExpiryDate               *time.Time
	RenewalDate              *time.Time
	Metadata                 map[string]interface{}
	CreatedAt                time.Time
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
