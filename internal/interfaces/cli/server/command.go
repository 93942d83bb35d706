package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aidlink/aidlink/internal/infrastructure/cache"
	"github.com/aidlink/aidlink/internal/infrastructure/config"
	"github.com/aidlink/aidlink/internal/infrastructure/database"
	"github.com/aidlink/aidlink/internal/infrastructure/migration"
	"github.com/aidlink/aidlink/internal/infrastructure/tracing"
	"github.com/aidlink/aidlink/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/aidlink/aidlink/internal/interfaces/http"
	"github.com/aidlink/aidlink/internal/shared/constants"
	"github.com/aidlink/aidlink/internal/shared/goroutine"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
	withoutRedis       bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the aidlink distribution API with the configuration for the given environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")
	cmd.Flags().BoolVar(&withoutRedis, "without-redis", false, "Run without the plan review store; execute then requires explicit lines")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	environment := bootstrap.ResolveEnv(env)
	cfg, log, err := bootstrap.Init(environment)
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"environment", environment,
		"auto_migrate", autoMigrate)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	shutdownTracing, err := tracing.Init(&cfg.Tracing, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warnw("tracing shutdown failed", "error", err)
		}
	}()

	if err := database.Init(&cfg.Database, log); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg, environment, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	var redisClient *redis.Client
	if !withoutRedis {
		redisClient, err = cache.NewRedisClient(cmd.Context(), &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	}

	router := httpRouter.NewRouter(cfg, database.Get(), redisClient, log)
	router.SetupRoutes()

	errCh := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		errCh <- router.Run(cfg.Server.GetAddr())
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := router.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, environment string, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	dialect := cfg.Database.GooseDialect()

	if autoMigrate {
		if environment == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := migration.NewManager(environment, dialect, log).Migrate(database.Get()); err != nil {
			return err
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	version, err := migration.NewGooseStrategy(dialect, log).GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}
