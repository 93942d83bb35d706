package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/infrastructure/config"
	"github.com/aidlink/aidlink/internal/infrastructure/metrics"
	"github.com/aidlink/aidlink/internal/interfaces/http/middleware"
	"github.com/aidlink/aidlink/internal/interfaces/http/routes"
	"github.com/aidlink/aidlink/internal/shared/logger"
	"github.com/aidlink/aidlink/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	server    *http.Server
	container *Container
	cfg       *config.Config
	logger    logger.Interface
}

func NewRouter(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client, log logger.Interface) *Router {
	gin.SetMode(ginMode(cfg.Server.Mode))
	utils.RegisterBindingValidators()
	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	return &Router{
		engine:    gin.New(),
		container: NewContainer(cfg, gdb, redisClient, log),
		cfg:       cfg,
		logger:    log,
	}
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

func (r *Router) SetupRoutes() {
	actorHeader := r.cfg.Server.ActorHeader

	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins, actorHeader))
	r.engine.Use(middleware.SecurityHeaders())
	if r.cfg.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
	if r.cfg.Tracing.Enabled {
		r.engine.Use(middleware.Tracing())
	}

	r.engine.GET("/health", r.container.healthHandler.Health)
	if r.cfg.Metrics.Enabled {
		r.engine.GET(r.cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	api := r.engine.Group("/api")
	api.Use(middleware.Actor(actorHeader))

	routes.SetupDistributionRoutes(api, &routes.DistributionRouteConfig{
		Handler:     r.container.distributionHandler,
		ActorHeader: actorHeader,
		RateLimiter: r.container.rateLimiter,
	})
	routes.SetupBeneficiaryRoutes(api, &routes.BeneficiaryRouteConfig{
		Handler: r.container.beneficiaryHandler,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run serves until Shutdown is called. It returns nil on a graceful stop.
func (r *Router) Run(addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	r.logger.Infow("HTTP server listening", "addr", addr)
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
