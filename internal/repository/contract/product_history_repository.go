package contract

import (
	"context"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/repository/specification"
)

type ProductHistoryRepository interface {
	Create(ctx context.Context, history *entity.CustomerProductHistory) error
	Update(ctx context.Context, history *entity.CustomerProductHistory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerProductHistory, error)
	// FindReminders returns entries with product, customer (and partner) and admin preloaded.
	FindReminders(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerProductHistory, error)
}

// ProductRenewalHistoryRepository is append-only: there is no update or delete.
type ProductRenewalHistoryRepository interface {
	Create(ctx context.Context, record *entity.ProductRenewalHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProductRenewalHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
