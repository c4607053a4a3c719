// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Taskly HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the token codec, weather client, metrics and audit recorders.
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/taskly/internal/api"
	"github.com/taibuivan/taskly/internal/core/audit"
	"github.com/taibuivan/taskly/internal/core/comment"
	"github.com/taibuivan/taskly/internal/core/manager"
	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/config"
	"github.com/taibuivan/taskly/internal/platform/constants"
	"github.com/taibuivan/taskly/internal/platform/metrics"
	"github.com/taibuivan/taskly/internal/platform/migration"
	pgstore "github.com/taibuivan/taskly/internal/platform/postgres"
	redisstore "github.com/taibuivan/taskly/internal/platform/redis"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/platform/weather"
	"github.com/taibuivan/taskly/internal/users/account"
	"github.com/taibuivan/taskly/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("kafka_audit", cfg.KafkaEnabled()),
	)

	// Root context for startup. Misconfiguration fails within 30s.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, migration.Source(cfg.MigrationPath), log), "run migrations")

	// ── 6. Platform Services ──────────────────────────────────────────────
	signingKey, err := sec.NewSigningKey(cfg.JWTSecretKey)
	must(log, err, "decode jwt signing key")

	tokenService, err := sec.NewTokenService(signingKey, cfg.JWTTokenTTL)
	must(log, err, "initialize jwt service")

	weatherClient := weather.NewClient(cfg.WeatherAPIURL, redisstore.NewCache(rdb), cfg.WeatherCacheTTL)
	registry := metrics.New()

	recorders := []audit.Recorder{audit.NewPostgresRecorder(pool)}
	if cfg.KafkaEnabled() {
		kafkaRecorder := audit.NewKafkaRecorder(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
		defer func() {
			log.Info("closing kafka audit writer")
			if cerr := kafkaRecorder.Close(); cerr != nil {
				log.Error("kafka close error", slog.Any("error", cerr))
			}
		}()
		recorders = append(recorders, kafkaRecorder)
	}
	auditRecorder := audit.Counted(audit.Multi(recorders...), registry)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	todoRepository := todo.NewPostgresRepository(pool)

	authService := auth.NewService(userRepository, tokenService, log)
	accountService := account.NewService(account.NewAccountRepository(pool), log)
	todoService := todo.NewService(todoRepository, userRepository, weatherClient, log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), todoRepository, log)
	managerService := manager.NewService(manager.NewPostgresRepository(pool), todoRepository, userRepository, auditRecorder, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   registry.Handler(),
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Todo:      todo.NewHandler(todoService),
		Comment:   comment.NewHandler(commentService),
		Manager:   manager.NewHandler(managerService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	observability := api.Observability{Requests: registry, Gate: registry}
	server := api.NewServer(serverCtx, cfg, log, tokenService, observability, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", slog.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process JSON logger and installs it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
