// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/camunda"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/config"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/database"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
	"github.com/mridulmalani2/wandernest2-sub003/internal/common/observability"
	"github.com/mridulmalani2/wandernest2-sub003/internal/matching"
	"github.com/mridulmalani2/wandernest2-sub003/internal/matching/candidates"
	"github.com/mridulmalani2/wandernest2-sub003/pkg/registry"

	fgm "github.com/mridulmalani2/wandernest2-sub003/internal/workers/matching/find-guide-matches"
	gai "github.com/mridulmalani2/wandernest2-sub003/internal/workers/matching/generate-anonymous-id"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	// The candidate cache is an accelerator. When Redis stays unreachable the
	// manager starts anyway and the fetcher hits the store directly.
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unavailable, candidate caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Activity registry (input schemas) ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("activity registry not loaded, using built-in schemas",
			zap.String("path", cfg.Registry.Path),
			zap.Error(err),
		)
		reg = nil
	}

	// --- Matching engine ---
	var rdb *redis.Client
	if redisClient != nil {
		rdb = redisClient.Client
	}
	fetcher := candidates.NewFetcher(
		&candidates.Config{
			MaxCandidates: cfg.Matching.MaxCandidates,
			MinPoolSize:   cfg.Matching.MinPoolSize,
			CacheTTL:      cfg.Matching.CacheTTL(),
		},
		pg.DB,
		rdb,
		log,
	)
	matcher := matching.NewMatcher(
		&matching.Config{ResultLimit: cfg.Matching.ResultLimit},
		fetcher,
		log,
	)

	// --- Register workers ---
	var workers []*camunda.CamundaWorker

	if cfg.Workers[fgm.TaskType].Enabled {
		wcfg := cfg.Workers[fgm.TaskType]
		handler := fgm.NewHandler(
			&fgm.Config{Timeout: config.GetDuration(wcfg.Timeout)},
			matcher,
			fgm.LoadInputSchema(reg),
			log,
		)
		workers = append(workers, camunda.NewWorker(
			zeebeClient, fgm.TaskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handler, obs, zapLog,
		))
	}

	if cfg.Workers[gai.TaskType].Enabled {
		wcfg := cfg.Workers[gai.TaskType]
		handler := gai.NewHandler(
			&gai.Config{Timeout: config.GetDuration(wcfg.Timeout)},
			log,
		)
		workers = append(workers, camunda.NewWorker(
			zeebeClient, gai.TaskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handler, obs, zapLog,
		))
	}

	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "postgres": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}
