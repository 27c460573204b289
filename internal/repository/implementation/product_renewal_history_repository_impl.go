package implementation

import (
	"context"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/mapper"
	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/repository/contract"
	"crm-renewal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ProductRenewalHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductHistoryMapper
}

func NewProductRenewalHistoryRepository(db *gorm.DB) contract.ProductRenewalHistoryRepository {
	return &ProductRenewalHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductHistoryMapper(),
	}
}

func (r *ProductRenewalHistoryRepositoryImpl) Create(ctx context.Context, record *entity.ProductRenewalHistory) error {
	m := r.mapper.RenewalToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.RenewalToEntity(m)
	return nil
}

func (r *ProductRenewalHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProductRenewalHistory, error) {
	var models []*model.ProductRenewalHistory
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ProductRenewalHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.RenewalToEntity(m)
	}
	return entities, nil
}

func (r *ProductRenewalHistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ProductRenewalHistory{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
