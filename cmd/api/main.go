package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/sol-portfolio/internal/application/services"
	"github.com/bimakw/sol-portfolio/internal/config"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/cache"
	"github.com/bimakw/sol-portfolio/internal/infrastructure/solana"
	"github.com/bimakw/sol-portfolio/internal/presentation/handlers"
	"github.com/bimakw/sol-portfolio/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log.Level)
	defer logger.Sync()

	logger.Info("Starting sol-portfolio API",
		zap.Int("port", cfg.API.Port),
		zap.Strings("endpoints", cfg.Solana.Endpoints),
		zap.Int("max_retries", cfg.Solana.MaxRetries),
	)

	// Connect to Redis cache (only when a TTL is configured)
	var responseCache services.ResponseCache
	var cacheChecker handlers.HealthChecker
	if cfg.API.CacheTTL > 0 {
		redisCache, err := cache.NewRedisCache(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			responseCache = redisCache
			cacheChecker = redisCache
		}
	}

	// Create chain adapter
	dialer := solana.NewDialer(cfg.Solana, logger)
	endpointChecker := solana.NewEndpointChecker(cfg.Solana.Endpoints, logger)

	// Create services
	fetchMetrics := services.NewFetchMetrics(prometheus.DefaultRegisterer)
	fetcher := services.NewBalanceFetcher(dialer, cfg.Solana, fetchMetrics, logger)
	portfolioService := services.NewPortfolioService(fetcher, responseCache, cfg.API.CacheTTL, logger)

	// Create handlers
	balanceHandler := handlers.NewBalanceHandler(portfolioService, logger)
	healthHandler := handlers.NewHealthHandler(endpointChecker, cacheChecker)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))

		balanceHandler.RegisterFetchRoutes(r)
		r.Route("/v1", balanceHandler.RegisterRoutes)
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
