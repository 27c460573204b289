package mapper

import (
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:       p.Id,
		Name:     p.Name,
		Duration: p.Duration,
		Price:    p.Price,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:       p.Id,
		Name:     p.Name,
		Duration: p.Duration,
		Price:    p.Price,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:          s.Id,
		AdminId:     s.AdminId,
		PlanId:      s.PlanId,
		Status:      entity.SubscriptionStatus(s.Status),
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		CancelledAt: s.CancelledAt,
		RenewedAt:   s.RenewedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:          s.Id,
		AdminId:     s.AdminId,
		PlanId:      s.PlanId,
		Status:      string(s.Status),
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		CancelledAt: s.CancelledAt,
		RenewedAt:   s.RenewedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
