package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeRenewalRecorded      = "PRODUCT_RENEWAL_RECORDED"
	TypeSubscriptionsExpired = "SUBSCRIPTIONS_EXPIRED"
)

// Publisher delivers events to the bus. Publishing is fire-and-forget for
// callers: a failure is logged and never undoes the committed change.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RenewalRecorded describes a committed history update and its ledger row.
type RenewalRecorded struct {
	HistoryId       uuid.UUID
	AdminId         uuid.UUID
	RenewalRecordId uuid.UUID
	Mode            string
	PurchaseDate    time.Time
	ExpiryDate      *time.Time
	RenewalDate     *time.Time
}

func NewRenewalRecorded(r RenewalRecorded, at time.Time) Event {
	return BaseEvent{
		Type: TypeRenewalRecorded,
		Data: map[string]interface{}{
			"history_id":        r.HistoryId.String(),
			"admin_id":          r.AdminId.String(),
			"renewal_record_id": r.RenewalRecordId.String(),
			"mode":              r.Mode,
			"purchase_date":     formatDate(&r.PurchaseDate),
			"expiry_date":       formatDate(r.ExpiryDate),
			"renewal_date":      formatDate(r.RenewalDate),
		},
		OccurredAt: at,
	}
}

func NewSubscriptionsExpired(count int64, at time.Time) Event {
	return BaseEvent{
		Type: TypeSubscriptionsExpired,
		Data: map[string]interface{}{
			"expired":  count,
			"swept_at": at.UTC().Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
