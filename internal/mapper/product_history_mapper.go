package mapper

import (
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/model"

	"gorm.io/datatypes"
)

type ProductHistoryMapper struct{}

func NewProductHistoryMapper() *ProductHistoryMapper {
	return &ProductHistoryMapper{}
}

func (m *ProductHistoryMapper) ToEntity(h *model.CustomerProductHistory) *entity.CustomerProductHistory {
	if h == nil {
		return nil
	}
	return &entity.CustomerProductHistory{
		Id:           h.Id,
		CustomerId:   h.CustomerId,
		AdminId:      h.AdminId,
		ProductId:    h.ProductId,
		PurchaseDate: h.PurchaseDate,
		ExpiryDate:   h.ExpiryDate,
		RenewalDate:  h.RenewalDate,
		RenewPeriod:  entity.RenewPeriod(h.RenewPeriod),
		Renewal:      h.Renewal,
		Status:       h.Status,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		Product:      m.productToEntity(h.Product),
		Customer:     m.customerToEntity(h.Customer),
		Admin:        m.adminToEntity(h.Admin),
	}
}

// ToModel drops relations; they are never written through a history row.
func (m *ProductHistoryMapper) ToModel(h *entity.CustomerProductHistory) *model.CustomerProductHistory {
	if h == nil {
		return nil
	}
	return &model.CustomerProductHistory{
		Id:           h.Id,
		CustomerId:   h.CustomerId,
		AdminId:      h.AdminId,
		ProductId:    h.ProductId,
		PurchaseDate: h.PurchaseDate,
		ExpiryDate:   h.ExpiryDate,
		RenewalDate:  h.RenewalDate,
		RenewPeriod:  string(h.RenewPeriod),
		Renewal:      h.Renewal,
		Status:       h.Status,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func (m *ProductHistoryMapper) RenewalToEntity(r *model.ProductRenewalHistory) *entity.ProductRenewalHistory {
	if r == nil {
		return nil
	}
	return &entity.ProductRenewalHistory{
		Id:                       r.Id,
		CustomerProductHistoryId: r.CustomerProductHistoryId,
		ProductId:                r.ProductId,
		PurchaseDate:             r.PurchaseDate,
		ExpiryDate:               r.ExpiryDate,
		RenewalDate:              r.RenewalDate,
		Metadata:                 map[string]interface{}(r.Metadata),
		CreatedAt:                r.CreatedAt,
	}
}

func (m *ProductHistoryMapper) RenewalToModel(r *entity.ProductRenewalHistory) *model.ProductRenewalHistory {
	if r == nil {
		return nil
	}
	return &model.ProductRenewalHistory{
		Id:                       r.Id,
		CustomerProductHistoryId: r.CustomerProductHistoryId,
		ProductId:                r.ProductId,
		PurchaseDate:             r.PurchaseDate,
		ExpiryDate:               r.ExpiryDate,
		RenewalDate:              r.RenewalDate,
		Metadata:                 datatypes.JSONMap(r.Metadata),
		CreatedAt:                r.CreatedAt,
	}
}

func (m *ProductHistoryMapper) productToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{Id: p.Id, AdminId: p.AdminId, Name: p.Name, Price: p.Price}
}

func (m *ProductHistoryMapper) customerToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	out := &entity.Customer{
		Id:            c.Id,
		AdminId:       c.AdminId,
		PartnerId:     c.PartnerId,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
	}
	if c.Partner != nil {
		out.Partner = &entity.Partner{
			Id:          c.Partner.Id,
			AdminId:     c.Partner.AdminId,
			CompanyName: c.Partner.CompanyName,
			FirstName:   c.Partner.FirstName,
			LastName:    c.Partner.LastName,
			Email:       c.Partner.Email,
		}
	}
	return out
}

func (m *ProductHistoryMapper) adminToEntity(a *model.Admin) *entity.Admin {
	if a == nil {
		return nil
	}
	return &entity.Admin{
		Id:          a.Id,
		CompanyName: a.CompanyName,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
	}
}
