package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/Troubladore/silent-auction-sub001/docs/swagger"
	"github.com/Troubladore/silent-auction-sub001/pkg/app"
	"github.com/Troubladore/silent-auction-sub001/pkg/auth"
	"github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/config"
	"github.com/Troubladore/silent-auction-sub001/pkg/database"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	"github.com/Troubladore/silent-auction-sub001/pkg/telemetry"
	ledgerApi "github.com/Troubladore/silent-auction-sub001/services/ledger/application/api"
)

// @title					Silent Auction Bid Ledger API
// @version				1.0
// @description			Records winning bids against finite item stock and takes bidder payments.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewLedgerMetrics()
	if err != nil {
		log.Error("failed to create ledger metrics", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	credentials, err := auth.NewCredentials(cfg)
	if err != nil {
		log.Error("failed to load operator credentials", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Redis backs the inventory cache and sessions. Outside production the API
	// runs without it: inventory reads go to Postgres and sessions live in cookies.
	var redisClient *cache.RedisClient
	var sessionStore sessions.Store
	redisClient, err = cache.NewRedisClient(ctx, cfg)
	switch {
	case err == nil:
		defer redisClient.Close() //nolint:errcheck
		sessionStore = auth.NewSessionStore(
			redisClient.Client(),
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			cfg.Environment == config.EnvProduction,
			cfg.SessionMaxAge,
		)
		log.Info("redis connected", "session_backend", "redis")
	case cfg.Environment == config.EnvProduction:
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	default:
		log.Warn("redis unavailable, continuing without inventory cache", "error", err)
		redisClient = nil
		sessionStore = auth.NewCookieStore(
			[]byte(cfg.SessionAuthKey),
			[]byte(cfg.SessionEncryptionKey),
			false,
			cfg.SessionMaxAge,
		)
	}

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Metrics:      metrics,
		SessionStore: sessionStore,
		Credentials:  credentials,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	checks := httpx.HealthChecks{Database: pool, EventBus: eventBus}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application) {
	ledgerApi.LedgerRoutes(r, a)
}
