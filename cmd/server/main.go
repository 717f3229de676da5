package main

import (
	"context"   // Shutdown deadline and Redis ping
	"errors"    // ErrServerClosed matching
	"net/http"  // HTTP server
	"os"        // Exit codes
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // Signal numbers
	"time"      // Server timeouts

	"budget_tracker/internal/api"             // API handlers and routes
	"budget_tracker/internal/auth"            // Credential store
	"budget_tracker/internal/config"          // Configuration
	"budget_tracker/internal/db"              // Database connection and migration
	"budget_tracker/internal/ledger"          // Budget ledger
	"budget_tracker/internal/middleware"      // Request logging
	"budget_tracker/internal/store"           // Storage contracts
	"budget_tracker/internal/store/gormstore" // SQL backend
	"budget_tracker/internal/store/memory"    // In-memory backend
	"budget_tracker/internal/utils"           // Token service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server and shutdown goroutines
)

const shutdownTimeout = 10 * time.Second // In-flight requests get this long to finish

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logrus.Warn("JWT_SECRET is not set, using the development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logrus.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	logrus.Info("Server stopped gracefully")
}

// run builds the dependencies, serves until ctx is cancelled and then drains connections
func run(ctx context.Context, cfg *config.Config) error {
	users, entries, err := openStore(cfg)
	if err != nil {
		return err
	}

	cache := api.Cache{TTL: cfg.CacheTTL} // Caching stays off without REDIS_ADDR
	if cfg.RedisAddr != "" {
		// Setup Redis client
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()
		// Test Redis connection
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		cache.Client = redisClient
		logrus.WithField("addr", cfg.RedisAddr).Info("Redis cache enabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logrus.StandardLogger()))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return err
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	api.RegisterRoutes(r, api.Deps{
		Auth:   auth.NewService(users, tokens),
		Ledger: ledger.New(entries),
		Tokens: tokens,
		Cache:  cache,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "backend": cfg.StoreBackend}).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done() // Signal received or the listener failed
		logrus.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore picks the storage backend named by STORE_BACKEND
func openStore(cfg *config.Config) (store.UserStore, store.LedgerStore, error) {
	if cfg.StoreBackend != config.BackendSQL {
		s := memory.New()
		logrus.Info("Using in-memory store")
		return s, s, nil
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, nil, err
	}
	s := gormstore.New(conn)
	logrus.WithField("driver", cfg.DBDriver).Info("Using SQL store")
	return s, s, nil
}
