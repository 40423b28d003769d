package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seatshare-inc/seatshare/internal/application/purchase/usecases"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/config"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/database"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/payment"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/repository"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/scheduler"
	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// The worker runs the background side of the marketplace: the grant expiry
// sweep and refund retries. It shares nothing with the HTTP server except
// the database and cache, so the two deploy and scale independently.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting marketplace worker", "environment", env)

	if err := biztime.Init(cfg.Marketplace.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	grantRepo := repository.NewGrantRepository(database.Get(), log)
	refundTaskRepo := repository.NewRefundTaskRepository(database.Get(), log)
	availabilityCache := cache.NewRedisPoolAvailabilityCache(redisClient, log)
	gateway := payment.NewGatewayFromConfig(&cfg.Payment, log)

	expireGrantsUC := usecases.NewExpireGrantsUseCase(
		grantRepo,
		availabilityCache,
		cfg.Marketplace.ReleaseSeatsOnExpiry,
		log,
	)
	retryRefundsUC := usecases.NewRetryRefundsUseCase(
		refundTaskRepo,
		gateway,
		cfg.Marketplace.RefundMaxAttempts,
		log,
	)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}

	sweepInterval := time.Duration(cfg.Marketplace.SweepIntervalMinutes) * time.Minute
	refundInterval := time.Duration(cfg.Marketplace.RefundRetryMinutes) * time.Minute
	if err := manager.RegisterGrantJobs(expireGrantsUC, retryRefundsUC, sweepInterval, refundInterval); err != nil {
		log.Fatalw("failed to register jobs", "error", err)
	}

	manager.Start()
	log.Infow("marketplace worker started",
		"sweep_interval", sweepInterval,
		"refund_interval", refundInterval,
		"release_seats_on_expiry", cfg.Marketplace.ReleaseSeatsOnExpiry)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}
	log.Infow("marketplace worker stopped")
}
