package unitofwork

import (
	"context"

	"crm-renewal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubscriptionRepository() contract.SubscriptionRepository
	ProductHistoryRepository() contract.ProductHistoryRepository
	ProductRenewalHistoryRepository() contract.ProductRenewalHistoryRepository
}
