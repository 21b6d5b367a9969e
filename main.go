package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/maison-sac/storefront-api/auth"
	"github.com/maison-sac/storefront-api/backup"
	"github.com/maison-sac/storefront-api/config"
	"github.com/maison-sac/storefront-api/feed"
	"github.com/maison-sac/storefront-api/logger"
	"github.com/maison-sac/storefront-api/middleware"
	"github.com/maison-sac/storefront-api/paystack"
	"github.com/maison-sac/storefront-api/routes"
	"github.com/maison-sac/storefront-api/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer log.Sync()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Fatal("Failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeBackend()

	if cfg.Paystack.SecretKey == "" {
		log.Warn("Paystack secret key is not set; payment endpoints will fail")
	}
	if cfg.Auth.AdminPassword == "" {
		log.Warn("Admin password is not set; admin login is disabled")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT secret is not set; admin gate only checks cookie presence")
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.Logger(log), middleware.Recovery(log))
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := feed.NewHub(log)
	routes.SetupRoutes(r, &routes.Deps{
		Data:     routes.NewCollections(backend),
		Paystack: paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, nil),
		Issuer:   auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Feed:     hub,
		Config:   cfg,
		Logger:   log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Backup.Enabled {
		if cfg.Storage.Driver == "file" {
			go backup.NewScheduler(cfg.Storage.DataDir, cfg.Backup.Dir, cfg.Backup.Retention, cfg.Backup.Hour, log).Run(ctx)
		} else {
			log.Warn("Data backup only applies to the file driver", zap.String("driver", cfg.Storage.Driver))
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	log.Info("Storefront API started",
		zap.String("addr", srv.Addr),
		zap.String("storage", cfg.Storage.Driver))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case err := <-srvErr:
		log.Error("Server error", zap.Error(err))
	}

	cancel()
	hub.Close()

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Storefront API stopped")
}

// openBackend picks where collections are stored.
func openBackend(cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres", "sqlite":
		b, err := store.OpenGorm(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b := store.NewRedisBackend(client, cfg.Redis.Prefix, cfg.Redis.TTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return b, func() { _ = client.Close() }, nil

	default:
		b, err := store.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	}
}
