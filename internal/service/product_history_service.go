package service

import (
	"context"
	"time"

	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/metrics"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/pkg/events"
	"crm-renewal-be/pkg/renewal"

	"github.com/google/uuid"
)

type IProductHistoryService interface {
	Update(ctx context.Context, scope renewal.Scope, id uuid.UUID, mode string, req *dto.UpdateHistoryRequest, performedBy string) (*dto.UpdateHistoryResponse, error)
	ListRenewals(ctx context.Context, scope renewal.Scope, id uuid.UUID) ([]*dto.RenewalRecordResponse, error)
}

type productHistoryService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *renewal.Manager
	publisher  events.Publisher
	metrics    *metrics.Recorder
	location   *time.Location
	logger     logger.ILogger
	now        func() time.Time
}

func NewProductHistoryService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	recorder *metrics.Recorder,
	location *time.Location,
	logger logger.ILogger,
) IProductHistoryService {
	return &productHistoryService{
		uowFactory: uowFactory,
		manager:    renewal.NewManager(location, logger),
		publisher:  publisher,
		metrics:    recorder,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *productHistoryService) Update(ctx context.Context, scope renewal.Scope, id uuid.UUID, rawMode string, req *dto.UpdateHistoryRequest, performedBy string) (*dto.UpdateHistoryResponse, error) {
	mode, err := renewal.ParseUpdateMode(rawMode)
	if err != nil {
		return nil, err
	}

	payload, err := s.toPayload(req)
	if err != nil {
		return nil, err
	}

	res, err := s.manager.UpdateHistory(ctx, s.uowFactory.NewUnitOfWork(ctx), renewal.UpdateRequest{
		Scope:       scope,
		HistoryId:   id,
		Mode:        mode,
		Payload:     payload,
		PerformedBy: performedBy,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RenewalUpdated(string(mode))

	event := events.NewRenewalRecorded(events.RenewalRecorded{
		HistoryId:       res.History.Id,
		AdminId:         res.History.AdminId,
		RenewalRecordId: res.Archived.Id,
		Mode:            string(mode),
		PurchaseDate:    res.History.PurchaseDate,
		ExpiryDate:      res.History.ExpiryDate,
		RenewalDate:     res.History.RenewalDate,
	}, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish renewal event", map[string]interface{}{
			"historyId": res.History.Id.String(),
			"error":     err.Error(),
		})
	}

	return &dto.UpdateHistoryResponse{
		History:  toHistoryResponse(res.History),
		Archived: toRenewalRecordResponse(res.Archived),
	}, nil
}

func (s *productHistoryService) ListRenewals(ctx context.Context, scope renewal.Scope, id uuid.UUID) ([]*dto.RenewalRecordResponse, error) {
	records, err := s.manager.ListRenewals(ctx, s.uowFactory.NewUnitOfWork(ctx), scope, id)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RenewalRecordResponse, len(records))
	for i, r := range records {
		res[i] = toRenewalRecordResponse(r)
	}
	return res, nil
}

func (s *productHistoryService) toPayload(req *dto.UpdateHistoryRequest) (*renewal.ManualPayload, error) {
	if req == nil {
		return nil, nil
	}

	payload := &renewal.ManualPayload{
		Renewal: req.Renewal,
		Status:  req.Status,
	}
	var err error
	if payload.PurchaseDate, err = s.parseOptionalDate(req.PurchaseDate); err != nil {
		return nil, err
	}
	if payload.ExpiryDate, err = s.parseOptionalDate(req.ExpiryDate); err != nil {
		return nil, err
	}
	if payload.RenewalDate, err = s.parseOptionalDate(req.RenewalDate); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *productHistoryService) parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := renewal.ParseDate(*raw, s.location)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toHistoryResponse(h *entity.CustomerProductHistory) *dto.HistoryResponse {
	return &dto.HistoryResponse{
		Id:           h.Id,
		CustomerId:   h.CustomerId,
		ProductId:    h.ProductId,
		PurchaseDate: h.PurchaseDate,
		ExpiryDate:   h.ExpiryDate,
		RenewalDate:  h.RenewalDate,
		RenewPeriod:  string(h.RenewPeriod),
		Renewal:      h.Renewal,
		Status:       h.Status,
	}
}

func toRenewalRecordResponse(r *entity.ProductRenewalHistory) *dto.RenewalRecordResponse {
	return &dto.RenewalRecordResponse{
		Id:                       r.Id,
		CustomerProductHistoryId: r.CustomerProductHistoryId,
		ProductId:                r.ProductId,
		PurchaseDate:             r.PurchaseDate,
		ExpiryDate:               r.ExpiryDate,
		RenewalDate:              r.RenewalDate,
		Metadata:                 r.Metadata,
		CreatedAt:                r.CreatedAt,
	}
}
