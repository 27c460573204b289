package renewal

import (
	"context"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/specification"
	"crm-renewal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// UpdateRequest asks for one history entry to be advanced.
type UpdateRequest struct {
	Scope       Scope
	HistoryId   uuid.UUID
	Mode        UpdateMode
	Payload     *ManualPayload
	PerformedBy string
}

// UpdateResult holds the entry as written and the ledger row of its prior state.
type UpdateResult struct {
	History  *entity.CustomerProductHistory
	Archived *entity.ProductRenewalHistory
}

// Manager runs renewal updates as one transaction: read, compute, write, archive.
type Manager struct {
	location *time.Location
	logger   logger.ILogger
}

// NewManager advances cadences in location. A nil location means UTC.
func NewManager(location *time.Location, logger logger.ILogger) *Manager {
	if location == nil {
		location = time.UTC
	}
	return &Manager{location: location, logger: logger}
}

func (m *Manager) UpdateHistory(ctx context.Context, uow unitofwork.UnitOfWork, req UpdateRequest) (*UpdateResult, error) {
	if err := req.Scope.validate(); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, storeErr("begin transaction", err)
	}
	defer uow.Rollback()

	// The lock makes a concurrent update of the same entry wait and then
	// read this one's result, so each ledger row is a distinct prior state.
	specs := append(req.Scope.historySpecs(),
		specification.HistoryByID{ID: req.HistoryId},
		specification.RenewalEligible{},
		specification.ForUpdate{},
	)
	existing, err := uow.ProductHistoryRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, storeErr("load history entry", err)
	}
	if existing == nil {
		return nil, ErrRenewalNotEligible
	}

	updated, err := ApplyUpdate(existing, req.Mode, req.Payload, m.location)
	if err != nil {
		return nil, err
	}

	if err := uow.ProductHistoryRepository().Update(ctx, updated); err != nil {
		return nil, storeErr("update history entry", err)
	}

	archived, err := NewAuditTrail(uow.ProductRenewalHistoryRepository()).Archive(ctx, existing, map[string]interface{}{
		"mode":         string(req.Mode),
		"renew_period": string(existing.RenewPeriod),
		"performed_by": req.PerformedBy,
	})
	if err != nil {
		m.logger.Error("RENEWAL", "Failed to archive renewal history", map[string]interface{}{
			"historyId": existing.Id.String(),
			"error":     err.Error(),
		})
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, storeErr("commit transaction", err)
	}

	m.logger.Info("RENEWAL", "Updated product history", map[string]interface{}{
		"historyId": updated.Id.String(),
		"adminId":   req.Scope.AdminId.String(),
		"mode":      string(req.Mode),
	})

	return &UpdateResult{History: updated, Archived: archived}, nil
}

// ListRenewals returns the ledger of an entry, newest first, after checking
// the entry is visible to the scope. Invisible entries report ErrRenewalNotEligible.
func (m *Manager) ListRenewals(ctx context.Context, uow unitofwork.UnitOfWork, scope Scope, historyId uuid.UUID) ([]*entity.ProductRenewalHistory, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}

	specs := append(scope.historySpecs(), specification.HistoryByID{ID: historyId})
	entry, err := uow.ProductHistoryRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, storeErr("load history entry", err)
	}
	if entry == nil {
		return nil, ErrRenewalNotEligible
	}

	records, err := uow.ProductRenewalHistoryRepository().FindAll(ctx,
		specification.RenewalsOfHistory{HistoryID: historyId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, storeErr("list renewal history", err)
	}
	return records, nil
}
