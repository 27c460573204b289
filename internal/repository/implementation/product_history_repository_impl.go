package implementation

import (
	"context"
	"errors"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/mapper"
	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/repository/contract"
	"crm-renewal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ProductHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductHistoryMapper
}

func NewProductHistoryRepository(db *gorm.DB) contract.ProductHistoryRepository {
	return &ProductHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductHistoryMapper(),
	}
}

func (r *ProductHistoryRepositoryImpl) Create(ctx context.Context, history *entity.CustomerProductHistory) error {
	m := r.mapper.ToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.ToEntity(m)
	return nil
}

// Update writes the mutable columns only. Nil dates are written as NULL.
func (r *ProductHistoryRepositoryImpl) Update(ctx context.Context, history *entity.CustomerProductHistory) error {
	m := r.mapper.ToModel(history)
	res := r.db.WithContext(ctx).Model(&model.CustomerProductHistory{Id: m.Id}).
		Select("purchase_date", "expiry_date", "renewal_date", "renew_period", "renewal", "status").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductHistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerProductHistory, error) {
	var m model.CustomerProductHistory
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.CustomerProductHistory{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductHistoryRepositoryImpl) FindReminders(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomerProductHistory, error) {
	var models []*model.CustomerProductHistory
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.CustomerProductHistory{}), specs...)
	query = query.
		Preload("Product").
		Preload("Customer.Partner").
		Preload("Admin")
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CustomerProductHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
