// Copyright (c) 2026 TrendHive. All rights reserved.

// Command api is the entry point for the TrendHive HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/trendhive/trendhive/internal/api"
	"github.com/trendhive/trendhive/internal/auth"
	"github.com/trendhive/trendhive/internal/commerce"
	"github.com/trendhive/trendhive/internal/contact"
	"github.com/trendhive/trendhive/internal/platform/config"
	"github.com/trendhive/trendhive/internal/platform/constants"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/middleware"
	"github.com/trendhive/trendhive/internal/platform/migration"
	pgstore "github.com/trendhive/trendhive/internal/platform/postgres"
	redisstore "github.com/trendhive/trendhive/internal/platform/redis"
	"github.com/trendhive/trendhive/internal/platform/sec"
	"github.com/trendhive/trendhive/internal/social"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Application-lifetime context; cancellation stops background loops
	// (rate limiter cleanup) on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
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
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security / Mail ────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, log)
	} else {
		log.Warn("smtp_not_configured_mail_disabled")
		mailer = mail.NewNoopSender(log)
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService, mailer, cfg.FrontendURL, cfg.AccountActiveDefault)

	// The session gate is shared by every protected route group.
	authenticator := middleware.NewAuthenticator(tokenService, authService, cfg.IsProduction())
	authHandler := auth.NewHandler(authService, authenticator, cfg.IsProduction())

	commerceService := commerce.NewService(
		commerce.NewProductRepository(pool),
		commerce.NewBagRepository(pool),
		commerce.NewWishlistRepository(pool),
		commerce.NewProductCache(rdb),
	)
	commerceHandler := commerce.NewHandler(commerceService, authenticator)

	socialService := social.NewService(
		social.NewGroupRepository(pool),
		social.NewPostRepository(pool),
		memberResolver{authService},
		mailer,
	)
	socialHandler := social.NewHandler(socialService, authenticator)

	contactService := contact.NewService(contact.NewSubmissionRepository(pool), mailer, cfg.MailAdminAddr)
	contactHandler := contact.NewHandler(contactService, authenticator)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Commerce:  commerceHandler,
		Social:    socialHandler,
		Contact:   contactHandler,
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// memberResolver adapts the auth service to the social domain's notification
// lookup without a package dependency between the two domains.
type memberResolver struct {
	users *auth.Service
}

func (resolver memberResolver) ResolveMember(ctx context.Context, userID string) (*social.MemberProfile, error) {
	user, err := resolver.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &social.MemberProfile{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
