package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidlink/aidlink/internal/application/donation/usecases"
	"github.com/aidlink/aidlink/internal/infrastructure/database"
	"github.com/aidlink/aidlink/internal/infrastructure/metrics"
	"github.com/aidlink/aidlink/internal/infrastructure/repository"
	"github.com/aidlink/aidlink/internal/infrastructure/scheduler"
	"github.com/aidlink/aidlink/internal/interfaces/cli/bootstrap"
	"github.com/aidlink/aidlink/internal/shared/goroutine"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	env = bootstrap.ResolveEnv(env)

	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		fmt.Printf("failed to start worker: %v\n", err)
		os.Exit(1)
	}
	log.Infow("starting donation expiry worker", "environment", env)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled && cfg.Metrics.WorkerAddr != "" {
		metricsServer = metrics.NewServer(cfg.Metrics.WorkerAddr, cfg.Metrics.Path)
		goroutine.SafeGo(log, "metrics-server", func() {
			log.Infow("serving worker metrics", "addr", cfg.Metrics.WorkerAddr, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("worker metrics server stopped", "error", err)
			}
		})
	}

	if err := database.Init(&cfg.Database, log); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	donationRepo := repository.NewDonationRepository(database.Get())
	expireUC := usecases.NewExpireDonationsUseCase(donationRepo, cfg.Scheduler.ExpiryBatchSize, log.Named("donation"))

	manager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		log.Errorw("failed to create scheduler", "error", err)
		return
	}

	interval := time.Duration(cfg.Scheduler.ExpiryIntervalMinutes) * time.Minute
	if err := manager.RegisterDonationExpiryJob(expireUC, interval); err != nil {
		log.Errorw("failed to register donation expiry job", "error", err)
		return
	}

	manager.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig.String())

	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler stopped with error", "error", err)
	}
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Warnw("worker metrics server shutdown", "error", err)
		}
		cancel()
	}
	log.Infow("donation expiry worker stopped")
}
