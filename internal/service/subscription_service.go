package service

import (
	"context"
	"time"

	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/metrics"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/cache"
	"crm-renewal-be/internal/repository/specification"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/pkg/events"
	"crm-renewal-be/pkg/renewal"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	List(ctx context.Context, adminId uuid.UUID) ([]*dto.SubscriptionResponse, error)
	Show(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.SubscriptionResponse, error)
	SweepExpired(ctx context.Context) (*dto.ExpirySweepResponse, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	planCache  cache.PlanCache
	publisher  events.Publisher
	metrics    *metrics.Recorder
	logger     logger.ILogger
	sweepLog   logger.ILogger
	now        func() time.Time
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	planCache cache.PlanCache,
	publisher events.Publisher,
	recorder *metrics.Recorder,
	logger logger.ILogger,
	sweepLogger logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		planCache:  planCache,
		publisher:  publisher,
		metrics:    recorder,
		logger:     logger,
		sweepLog:   sweepLogger,
		now:        time.Now,
	}
}

func (s *subscriptionService) List(ctx context.Context, adminId uuid.UUID) ([]*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subs, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.TenantOwned{AdminID: adminId},
		specification.OrderBy{Field: "starts_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resolver := renewal.NewStatusResolver(uow.SubscriptionRepository(), s.logger)

	res := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		item, err := s.reconcile(ctx, uow, resolver, sub, now)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *subscriptionService) Show(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.TenantOwned{AdminID: adminId},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, renewal.ErrSubscriptionNotFound
	}

	resolver := renewal.NewStatusResolver(uow.SubscriptionRepository(), s.logger)
	return s.reconcile(ctx, uow, resolver, sub, s.now())
}

// SweepExpired runs the bulk expiry pass once. It backs the cron job, the
// admin trigger and cmd/sweep, and logs to the sweep log only.
func (s *subscriptionService) SweepExpired(ctx context.Context) (*dto.ExpirySweepResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scanner := renewal.NewExpiryScanner(uow.SubscriptionRepository(), s.sweepLog)

	now := s.now()
	started := time.Now()
	count, err := scanner.Sweep(ctx, now)
	s.metrics.SweepFinished(count, time.Since(started).Seconds(), err)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		if err := s.publisher.Publish(ctx, events.NewSubscriptionsExpired(count, now)); err != nil {
			s.sweepLog.Warn("EVENTS", "Failed to publish expiry event", map[string]interface{}{
				"expired": count,
				"error":   err.Error(),
			})
		}
	}

	return &dto.ExpirySweepResponse{Expired: count, SweptAt: now}, nil
}

func (s *subscriptionService) reconcile(ctx context.Context, uow unitofwork.UnitOfWork, resolver *renewal.StatusResolver, sub *entity.Subscription, now time.Time) (*dto.SubscriptionResponse, error) {
	rec, err := resolver.Reconcile(ctx, sub, now)
	if err != nil {
		return nil, err
	}
	if rec.Written {
		s.metrics.StatusWritten(string(rec.Subscription.Status))
	}

	plan, err := s.findPlan(ctx, uow, sub.PlanId)
	if err != nil {
		return nil, err
	}

	res := &dto.SubscriptionResponse{
		Id:          sub.Id,
		PlanId:      sub.PlanId,
		Status:      string(sub.Status),
		Message:     rec.Message,
		StartsAt:    sub.StartsAt,
		EndsAt:      sub.EndsAt,
		CancelledAt: sub.CancelledAt,
		RenewedAt:   sub.RenewedAt,
	}
	if plan != nil {
		res.Plan = &dto.PlanSummary{Id: plan.Id, Name: plan.Name, Duration: plan.Duration, Price: plan.Price}
	}
	return res, nil
}

func (s *subscriptionService) findPlan(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Plan, error) {
	if plan, ok := s.planCache.Get(ctx, id); ok {
		return plan, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan != nil {
		s.planCache.Set(ctx, plan)
	}
	return plan, nil
}
