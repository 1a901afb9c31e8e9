// cmd/isora/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/compliance"
	"github.com/isora-platform/cyberops-core/internal/config"
	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/enrichment"
	"github.com/isora-platform/cyberops-core/internal/gateway"
	gwmetrics "github.com/isora-platform/cyberops-core/internal/gateway/metrics"
	"github.com/isora-platform/cyberops-core/internal/httpapi"
	"github.com/isora-platform/cyberops-core/internal/kvstore"
	"github.com/isora-platform/cyberops-core/internal/nis2"
	"github.com/isora-platform/cyberops-core/internal/ratelimit"
	"github.com/isora-platform/cyberops-core/internal/repository"
	"github.com/isora-platform/cyberops-core/internal/scheduler"

	"github.com/redis/go-redis/v9"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	config.LoadFromEnv(cfg)

	live := config.NewLive(cfg)
	if cfgPath != "" {
		if watcher, err := config.WatchFile(cfgPath, live, logger); err != nil {
			logger.Warn("config hot-reload disabled", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	var redisClient *redis.Client
	var sortedSetStore kvstore.SortedSetStore
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("invalid REDIS_URL, falling back to in-memory rate-limit store", zap.Error(err))
			sortedSetStore = kvstore.NewMemoryStore()
		} else {
			redisClient = redis.NewClient(opts)
			sortedSetStore = kvstore.NewRedisStore(redisClient)
		}
	} else {
		sortedSetStore = kvstore.NewMemoryStore()
	}

	repo := repository.New()

	validator := authtoken.NewValidator([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTAlgorithm)
	limiter := ratelimit.NewLimiter(sortedSetStore, cfg.RateLimit.BypassSuperAdmin)
	planCache := ratelimit.NewPlanCache()

	misp, _ := ctifeed.New(ctifeed.Config{Type: ctifeed.TypeMISP, APIKey: cfg.Feeds.APIKeys["misp"]})
	otx, _ := ctifeed.New(ctifeed.Config{Type: ctifeed.TypeOTX, APIKey: cfg.Feeds.APIKeys["otx"]})
	virustotal, _ := ctifeed.New(ctifeed.Config{Type: ctifeed.TypeVirusTotal, APIKey: cfg.Feeds.APIKeys["virustotal"]})
	enricher := enrichment.New(enrichment.Config{}, misp, otx, virustotal, redisClient, logger)

	nis2Manager := nis2.NewManager(repo.NIS2)
	evaluator := compliance.NewEvaluator()

	sched := scheduler.NewScheduler(repo.Feeds, repo.IOCs,
		scheduler.WithLogger(logger),
		scheduler.WithSyncInterval(cfg.Scheduler.SyncInterval),
		scheduler.WithRetryPolicy(cfg.Scheduler.MaxRetries, cfg.Scheduler.RetryDelay),
		scheduler.WithAdapterFactory(ctifeed.New),
	)

	collector := gwmetrics.NewCollector()
	apiKeys := gateway.NewAPIKeyManager()

	server := &httpapi.Server{
		Repo:      repo,
		Validator: validator,
		Limiter:   limiter,
		PlanCache: planCache,
		Enricher:  enricher,
		Scheduler: sched,
		NIS2:      nis2Manager,
		Evaluator: evaluator,
		APIKeys:   apiKeys,
		Live:      live,
		Collector: collector,
		Logger:    logger,
	}
	router := httpapi.NewRouter(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("isora cyberops companion starting",
		zap.Int("port", cfg.Server.Port),
		zap.Duration("scheduler_interval", cfg.Scheduler.SyncInterval))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}
}
