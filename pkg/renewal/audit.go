package renewal

import (
	"context"

	"crm-renewal-be/internal/entity"
)

// RenewalLedger is the insert-only store behind the audit trail.
type RenewalLedger interface {
	Create(ctx context.Context, record *entity.ProductRenewalHistory) error
}

// AuditTrail appends the pre-update state of a history entry.
type AuditTrail struct {
	ledger RenewalLedger
}

func NewAuditTrail(ledger RenewalLedger) *AuditTrail {
	return &AuditTrail{ledger: ledger}
}

// Snapshot builds the ledger row for existing, the entry as read before the
// update was applied.
func Snapshot(existing *entity.CustomerProductHistory, metadata map[string]interface{}) *entity.ProductRenewalHistory {
	prior := existing.Clone()
	return &entity.ProductRenewalHistory{
		CustomerProductHistoryId: prior.Id,
		ProductId:                prior.ProductId,
		PurchaseDate:             prior.PurchaseDate,
		ExpiryDate:               prior.ExpiryDate,
		RenewalDate:              prior.RenewalDate,
		Metadata:                 metadata,
	}
}

// Archive writes the snapshot. A failure here must fail the whole update.
func (a *AuditTrail) Archive(ctx context.Context, existing *entity.CustomerProductHistory, metadata map[string]interface{}) (*entity.ProductRenewalHistory, error) {
	record := Snapshot(existing, metadata)
	if err := a.ledger.Create(ctx, record); err != nil {
		return nil, storeErr("archive renewal history", err)
	}
	return record, nil
}
