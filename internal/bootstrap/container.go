package bootstrap

import (
	"context"
	"log"

	"crm-renewal-be/internal/config"
	"crm-renewal-be/internal/controller"
	"crm-renewal-be/internal/metrics"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/cache"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/internal/scheduler"
	"crm-renewal-be/internal/service"
	"crm-renewal-be/pkg/events"

	pktNats "crm-renewal-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReminderController       controller.IReminderController
	ProductHistoryController controller.IProductHistoryController
	SubscriptionController   controller.ISubscriptionController

	// Exposed for main.go and the one-shot commands
	SubscriptionService service.ISubscriptionService
	ExpiryJob           *scheduler.ExpiryJob
	Metrics             *metrics.Recorder
	Logger              logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	recorder := metrics.NewRecorder()
	location := cfg.Location()

	c := &Container{Metrics: recorder, Logger: sysLogger}

	// 2. Event Bus: JetStream when reachable, otherwise the in-process channel
	publisher := c.newPublisher(cfg, sysLogger)

	// 3. Plan cache: shared through Redis when configured
	planCache := c.newPlanCache(cfg, sysLogger)

	// 4. Services. The expiry sweep logs to its own file wherever it is triggered from.
	sweepLogger := logger.NewIsolatedLogger(cfg.App.SweepLogFilePath)
	reminderService := service.NewReminderService(uowFactory, location, sysLogger)
	historyService := service.NewProductHistoryService(uowFactory, publisher, recorder, location, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, planCache, publisher, recorder, sysLogger, sweepLogger)

	// 5. Background jobs
	c.ExpiryJob = scheduler.NewExpiryJob(cfg.Scheduler, subscriptionService, sweepLogger)

	// 6. Controllers
	c.ReminderController = controller.NewReminderController(reminderService)
	c.ProductHistoryController = controller.NewProductHistoryController(historyService)
	c.SubscriptionController = controller.NewSubscriptionController(subscriptionService)
	c.SubscriptionService = subscriptionService

	return c
}

func (c *Container) newPublisher(cfg *config.Config, sysLogger logger.ILogger) events.Publisher {
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err == nil {
		c.closers = append(c.closers, natsPub.Close)
		log.Printf("[INFO] Publishing events to NATS at %s", cfg.App.NatsURL)
		return natsPub
	}
	log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Using in-process event bus", err)

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	ctx, cancel := context.WithCancel(context.Background())
	consumer := events.NewLogConsumer(pubSub, sysLogger)
	if err := consumer.Consume(ctx, events.TypeRenewalRecorded, events.TypeSubscriptionsExpired); err != nil {
		log.Printf("[WARN] Failed to start event log consumer: %v", err)
	}
	c.closers = append(c.closers, func() {
		cancel()
		pubSub.Close()
	})

	return events.NewWatermillPublisher(pubSub)
}

func (c *Container) newPlanCache(cfg *config.Config, sysLogger logger.ILogger) cache.PlanCache {
	if cfg.App.RedisURL == "" {
		return cache.NewMemoryPlanCache(cfg.Cache.PlanTTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory plan cache", err)
		rdb.Close()
		return cache.NewMemoryPlanCache(cfg.Cache.PlanTTL)
	}

	c.closers = append(c.closers, func() { rdb.Close() })
	return cache.NewRedisPlanCache(rdb, cfg.Cache.PlanTTL, sysLogger)
}

// Close releases bus and cache connections and flushes the logger.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
