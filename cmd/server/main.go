// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"treasury/internal/audit"
	auditpublisher "treasury/internal/audit/publisher"
	auditstore "treasury/internal/audit/store"
	auditmemory "treasury/internal/audit/store/memory"
	auditpostgres "treasury/internal/audit/store/postgres"
	"treasury/internal/decision"
	"treasury/internal/intent"
	"treasury/internal/ledger"
	"treasury/internal/liquidity"
	"treasury/internal/pipeline"
	pipelinehandler "treasury/internal/pipeline/handler"
	pipelinemetrics "treasury/internal/pipeline/metrics"
	"treasury/internal/platform/config"
	"treasury/internal/platform/httpserver"
	"treasury/internal/platform/logger"
	platformredis "treasury/internal/platform/redis"
	"treasury/internal/policy"
	"treasury/internal/risk"
	"treasury/pkg/platform/middleware/auth"
	"treasury/pkg/platform/middleware/metadata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	// Ledger: Redis when configured, seeded in-memory otherwise.
	var accounts ledger.Ledger
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		accounts = ledger.NewRedisLedger(redisClient.Client)
		log.Info("ledger backend: redis")
	} else {
		accounts = ledger.NewSeededLedger()
		log.Info("ledger backend: in-memory (seeded)")
	}

	// Audit store: Postgres when configured, in-memory otherwise.
	var audits auditstore.Store
	var db *sql.DB
	if cfg.DB.URL != "" {
		db, err = sql.Open("postgres", cfg.DB.URL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		audits = auditpostgres.New(db)
		log.Info("audit store: postgres")
	} else {
		audits = auditmemory.NewInMemoryStore()
		log.Info("audit store: in-memory")
	}

	auditOpts := []audit.Option{audit.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := auditpublisher.NewClient(cfg.Kafka.Brokers)
		if err != nil {
			log.Error("kafka client failed", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()
		auditOpts = append(auditOpts,
			audit.WithPublisher(auditpublisher.New(kafkaClient, cfg.Kafka.Topic, log)))
		log.Info("audit stream: kafka", "topic", cfg.Kafka.Topic)
	}

	reviewPipeline := pipeline.New(
		intent.NewClassifier(),
		risk.NewScorer(),
		policy.NewValidator(policy.SenderNameAuthority{}),
		liquidity.NewChecker(accounts),
		decision.NewEngine(),
		audit.NewRecorder(),
		audit.NewService(audits, auditOpts...),
		log,
		pipeline.WithMetrics(pipelinemetrics.New()),
	)

	batchRunner := pipeline.NewRunner(reviewPipeline, cfg.Pipeline.BatchConcurrency)
	handler := pipelinehandler.New(reviewPipeline, batchRunner, audits, log)
	verifier := auth.NewHS256Verifier(cfg.App.JWTSigningKey)

	router := chi.NewRouter()
	router.Use(metadata.Middleware)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "postgres unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/v1", func(r chi.Router) {
		r.Use(auth.Middleware(verifier))
		handler.Register(r)
	})

	srv := httpserver.New(cfg.HTTP.Addr, router)
	log.Info("starting treasury gateway", "addr", cfg.HTTP.Addr, "env", cfg.App.Environment)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
