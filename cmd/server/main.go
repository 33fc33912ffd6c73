package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"benesurvey/internal/audit"
	"benesurvey/internal/jwttoken"
	"benesurvey/internal/platform/config"
	"benesurvey/internal/platform/httpserver"
	"benesurvey/internal/platform/logger"
	"benesurvey/internal/platform/middleware"
	platformredis "benesurvey/internal/platform/redis"
	surveyhandler "benesurvey/internal/survey/handler"
	surveymetrics "benesurvey/internal/survey/metrics"
	surveyservice "benesurvey/internal/survey/service"
	surveystore "benesurvey/internal/survey/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	// Stores: Postgres when configured, in-memory otherwise (dev and tests).
	var (
		responses   surveystore.ResponseStore
		validations surveystore.ValidationStore
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		responses = surveystore.NewPostgresResponseStore(db)
		validations = surveystore.NewPostgresValidationStore(db)
		log.Info("using postgres stores")
	} else {
		responses = surveystore.NewMemoryResponseStore()
		validations = surveystore.NewMemoryValidationStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Audit pipeline: events flow through a channel to a background worker.
	auditEvents := make(chan audit.Event, 256)
	auditStore := audit.NewInMemoryStore()
	auditPublisher := audit.NewPublisher(audit.NewChannelStore(auditEvents, auditStore))
	auditWorker := audit.NewWorker(auditStore, auditEvents)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := auditWorker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	serviceOpts := []surveyservice.Option{
		surveyservice.WithLogger(log),
		surveyservice.WithMetrics(surveymetrics.New()),
		surveyservice.WithAuditPublisher(auditPublisher),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		serviceOpts = append(serviceOpts,
			surveyservice.WithProgressCache(surveyservice.NewRedisProgressCache(redisClient, cfg.ProgressCacheTTL)))
		log.Info("progress cache enabled")
	}

	svc := surveyservice.New(responses, validations, serviceOpts...)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "benesurvey", "benesurvey-api")
	tokenValidator := jwttoken.NewServiceAdapter(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	// Metrics are operational surface; gate them when an admin token is set.
	if cfg.AdminToken != "" {
		r.With(middleware.RequireAdminToken(cfg.AdminToken, log)).
			Method(http.MethodGet, "/metrics", promhttp.Handler())
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokenValidator, log))
		surveyhandler.New(svc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("starting benesurvey", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
