package renewal

import (
	"context"
	"strings"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/repository/specification"
)

// ReminderFilters are optional case-insensitive substring filters.
type ReminderFilters struct {
	ProductName    string
	CustomerSearch string
	PartnerSearch  string
}

// ReminderLister is the read port used by the reminder query.
type ReminderLister interface {
	FindReminders(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerProductHistory, error)
}

type ReminderEngine struct {
	store ReminderLister
}

func NewReminderEngine(store ReminderLister) *ReminderEngine {
	return &ReminderEngine{store: store}
}

// Find lists active entitlements of the scope whose expiry date falls in the
// window, soonest-expiring first. It is read-only.
func (e *ReminderEngine) Find(ctx context.Context, scope Scope, window Window, filters ReminderFilters) ([]*entity.CustomerProductHistory, error) {
	if err := scope.validate(); err != nil {
		return nil, err
	}
	rows, err := e.store.FindReminders(ctx, ReminderSpecs(scope, window, filters)...)
	if err != nil {
		return nil, storeErr("find reminders", err)
	}
	return rows, nil
}

// ReminderSpecs composes the reminder query. With a customer search the
// partner search must hold for that same customer; a partner search on its
// own is applied directly.
func ReminderSpecs(scope Scope, window Window, filters ReminderFilters) []specification.Specification {
	specs := scope.historySpecs()
	specs = append(specs,
		specification.ActiveEntitlement{},
		specification.ExpiryBetween{Start: window.Start, End: window.End},
	)

	product := strings.TrimSpace(filters.ProductName)
	customer := strings.TrimSpace(filters.CustomerSearch)
	partner := strings.TrimSpace(filters.PartnerSearch)

	if product != "" {
		specs = append(specs, specification.ProductNameContains{Name: product})
	}
	switch {
	case customer != "":
		specs = append(specs, specification.CustomerMatches{Search: customer, PartnerSearch: partner})
	case partner != "":
		specs = append(specs, specification.PartnerMatches{Search: partner})
	}

	return append(specs, specification.OrderBy{Field: "customer_product_histories.expiry_date"})
}
