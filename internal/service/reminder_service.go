package service

import (
	"context"
	"time"

	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/pkg/renewal"
)

type IReminderService interface {
	Find(ctx context.Context, scope renewal.Scope, query *dto.ReminderQuery) (*dto.ReminderListResponse, error)
}

type reminderService struct {
	uowFactory unitofwork.RepositoryFactory
	location   *time.Location
	logger     logger.ILogger
	now        func() time.Time
}

// NewReminderService anchors named windows to the start of today in location.
func NewReminderService(uowFactory unitofwork.RepositoryFactory, location *time.Location, logger logger.ILogger) IReminderService {
	return &reminderService{
		uowFactory: uowFactory,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *reminderService) Find(ctx context.Context, scope renewal.Scope, query *dto.ReminderQuery) (*dto.ReminderListResponse, error) {
	name := renewal.WindowName(query.TimeWindow)
	if name == "" {
		name = renewal.WindowNext15
	}

	var customStart, customEnd *time.Time
	if query.StartDate != "" {
		t, err := renewal.ParseDate(query.StartDate, s.location)
		if err != nil {
			return nil, err
		}
		customStart = &t
	}
	if query.EndDate != "" {
		t, err := renewal.ParseDate(query.EndDate, s.location)
		if err != nil {
			return nil, err
		}
		customEnd = &t
	}

	window, err := renewal.ComputeWindow(name, s.now().In(s.location), customStart, customEnd)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := renewal.NewReminderEngine(uow.ProductHistoryRepository()).Find(ctx, scope, window, renewal.ReminderFilters{
		ProductName:    query.ProductName,
		CustomerSearch: query.CustomerSearch,
		PartnerSearch:  query.PartnerSearch,
	})
	if err != nil {
		s.logger.Error("REMINDER", "Failed to find reminders", map[string]interface{}{
			"adminId": scope.AdminId.String(),
			"window":  string(name),
			"error":   err.Error(),
		})
		return nil, err
	}

	reminders := make([]*dto.ReminderResponse, len(rows))
	for i, row := range rows {
		reminders[i] = toReminderResponse(row)
	}

	return &dto.ReminderListResponse{
		Window:    string(name),
		StartDate: window.Start,
		EndDate:   window.End,
		Count:     len(reminders),
		Reminders: reminders,
	}, nil
}

func toReminderResponse(h *entity.CustomerProductHistory) *dto.ReminderResponse {
	res := &dto.ReminderResponse{
		Id:           h.Id,
		PurchaseDate: h.PurchaseDate,
		ExpiryDate:   h.ExpiryDate,
		RenewalDate:  h.RenewalDate,
		RenewPeriod:  string(h.RenewPeriod),
		Renewal:      h.Renewal,
		Status:       h.Status,
	}

	if h.Product != nil {
		res.Product = &dto.ProductSummary{Id: h.Product.Id, Name: h.Product.Name, Price: h.Product.Price}
	}
	if h.Customer != nil {
		res.Customer = &dto.CustomerSummary{
			Id:            h.Customer.Id,
			CompanyName:   h.Customer.CompanyName,
			ContactPerson: h.Customer.ContactPerson,
			Email:         h.Customer.Email,
		}
		if p := h.Customer.Partner; p != nil {
			res.Customer.Partner = &dto.PartnerSummary{
				Id:          p.Id,
				CompanyName: p.CompanyName,
				FirstName:   p.FirstName,
				LastName:    p.LastName,
			}
		}
	}
	if h.Admin != nil {
		res.Admin = &dto.AdminSummary{Id: h.Admin.Id, CompanyName: h.Admin.CompanyName, Email: h.Admin.Email}
	}
	return res
}
