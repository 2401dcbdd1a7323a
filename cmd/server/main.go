package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"workscope/internal/aggregate"
	aggmetrics "workscope/internal/aggregate/metrics"
	"workscope/internal/audit"
	"workscope/internal/calendar"
	"workscope/internal/directory"
	jwttoken "workscope/internal/jwt_token"
	"workscope/internal/migrations"
	"workscope/internal/platform/config"
	"workscope/internal/platform/httpserver"
	"workscope/internal/platform/logger"
	platformredis "workscope/internal/platform/redis"
	"workscope/internal/report"
	httptransport "workscope/internal/transport/http"
	"workscope/internal/workspace"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Aggregation logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		events     calendar.Store
		reports    report.Store
		templates  report.TemplateStore
		users      directory.Store
		workspaces workspace.Directory
		auditStore audit.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(context.Background()); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		if err := migrations.Apply(context.Background(), db); err != nil {
			log.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		reportStore := report.NewPostgresStore(db)
		events = calendar.NewPostgresStore(db)
		reports = reportStore
		templates = reportStore
		users = directory.NewPostgresStore(db)
		workspaces = workspace.NewPostgresDirectory(db)
		auditStore = audit.NewPostgresStore(db)
	} else {
		log.Warn("no database configured, using in-memory stores")
		reportStore := report.NewInMemoryStore()
		events = calendar.NewInMemoryStore()
		reports = reportStore
		templates = reportStore
		users = directory.NewInMemoryStore()
		workspaces = workspace.NewInMemoryDirectory()
		auditStore = audit.NewInMemoryStore()
	}

	engineMetrics := aggmetrics.New()

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		events = calendar.NewCachedStore(events, rdb.Client,
			calendar.WithCacheTTL(cfg.StatsCacheTTL),
			calendar.WithCacheLogger(log),
			calendar.WithCacheObserver(engineMetrics),
		)
	}

	service := aggregate.NewService(events, reports, templates, users, workspaces,
		aggregate.WithLogger(log),
		aggregate.WithMetrics(engineMetrics),
		aggregate.WithAudit(audit.NewPublisher(auditStore)),
		aggregate.WithFetchConcurrency(cfg.FetchConcurrency),
		aggregate.WithPartitionFetchTimeout(cfg.PartitionTimeout),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "workscope", "workscope-api")
	handler := httptransport.NewHandler(service, log)
	router := httptransport.NewRouter(handler, jwtService, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting workscope", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
