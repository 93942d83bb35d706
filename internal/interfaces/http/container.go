package http

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	beneficiaryUsecases "github.com/aidlink/aidlink/internal/application/beneficiary/usecases"
	distributionUsecases "github.com/aidlink/aidlink/internal/application/distribution/usecases"
	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/infrastructure/cache"
	"github.com/aidlink/aidlink/internal/infrastructure/config"
	"github.com/aidlink/aidlink/internal/infrastructure/repository"
	"github.com/aidlink/aidlink/internal/interfaces/http/handlers"
	beneficiaryHandlers "github.com/aidlink/aidlink/internal/interfaces/http/handlers/beneficiary"
	distributionHandlers "github.com/aidlink/aidlink/internal/interfaces/http/handlers/distribution"
	"github.com/aidlink/aidlink/internal/interfaces/http/middleware"
	"github.com/aidlink/aidlink/internal/shared/biztime"
	"github.com/aidlink/aidlink/internal/shared/db"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// Container holds every wired dependency of the HTTP server.
type Container struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.Config
	log   logger.Interface

	txManager        *db.TransactionManager
	beneficiaryRepo  *repository.BeneficiaryRepository
	donationRepo     *repository.DonationRepository
	distributionRepo *repository.DistributionRepository
	planStore        distribution.PendingPlanStore
	allocator        *allocator.Allocator

	calculatePlanUC *distributionUsecases.CalculatePlanUseCase
	validatePlanUC  *distributionUsecases.ValidatePlanUseCase
	executePlanUC   *distributionUsecases.ExecutePlanUseCase
	getHistoryUC    *distributionUsecases.GetHistoryUseCase
	listEligibleUC  *beneficiaryUsecases.ListEligibleUseCase

	rateLimiter *middleware.RateLimiter

	healthHandler       *handlers.HealthHandler
	distributionHandler *distributionHandlers.Handler
	beneficiaryHandler  *beneficiaryHandlers.Handler
}

// NewContainer wires repositories, use cases and handlers. redisClient may be
// nil, in which case plans are not stored for review.
func NewContainer(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client, log logger.Interface) *Container {
	c := &Container{
		db:    gdb,
		redis: redisClient,
		cfg:   cfg,
		log:   log,
	}

	c.initInfrastructure()
	c.initDistribution()
	c.initBeneficiary()

	return c
}

func (c *Container) initInfrastructure() {
	c.txManager = db.NewTransactionManager(c.db)
	c.beneficiaryRepo = repository.NewBeneficiaryRepository(c.db, c.log)
	c.donationRepo = repository.NewDonationRepository(c.db)
	c.distributionRepo = repository.NewDistributionRepository(c.db)
	c.allocator = allocator.New(allocator.WithClock(biztime.NowUTC))

	if c.redis != nil {
		c.planStore = cache.NewRedisPendingPlanStore(c.redis,
			c.cfg.Distribution.PlanKeyPrefix,
			c.cfg.Distribution.PlanTTL(),
		)
	} else {
		c.log.Warnw("redis not configured, calculated plans will not be stored for review")
	}

	if c.redis != nil && c.cfg.Server.RateLimitPerMinute > 0 {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, c.cfg.Server.RateLimitPerMinute, time.Minute, c.log.Named("ratelimit"))
	}

	c.healthHandler = handlers.NewHealthHandler(c.db, c.redis, c.log)
}

func (c *Container) initDistribution() {
	dist := c.cfg.Distribution
	log := c.log.Named("distribution")

	c.calculatePlanUC = distributionUsecases.NewCalculatePlanUseCase(
		c.beneficiaryRepo, c.donationRepo, c.distributionRepo, c.planStore, c.allocator, dist.DefaultItemUnit, log)
	c.validatePlanUC = distributionUsecases.NewValidatePlanUseCase(log)
	c.executePlanUC = distributionUsecases.NewExecutePlanUseCase(
		c.txManager, c.beneficiaryRepo, c.donationRepo, c.distributionRepo, c.planStore,
		dist.DefaultItemUnit, dist.NotesMaxLength, log)
	c.getHistoryUC = distributionUsecases.NewGetHistoryUseCase(c.distributionRepo, dist.HistoryMaxRows, log)

	c.distributionHandler = distributionHandlers.NewHandler(
		c.calculatePlanUC, c.validatePlanUC, c.executePlanUC, c.getHistoryUC, log)
}

func (c *Container) initBeneficiary() {
	log := c.log.Named("beneficiary")
	c.listEligibleUC = beneficiaryUsecases.NewListEligibleUseCase(c.beneficiaryRepo, c.cfg.Distribution.HistoryMaxRows, log)
	c.beneficiaryHandler = beneficiaryHandlers.NewHandler(c.listEligibleUC, log)
}
