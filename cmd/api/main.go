// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.ForService(logger.New(cfg), cfg)
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := redisClient.Health(ctx); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	migration := postgres.NewMigration(db.GetDB(), log)

	if err := migration.RunAutoMigrations(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		log.Warnf("Index creation failed: %v", err)
	}

	// Seed a demo store in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.Warnf("Data seeding failed: %v", err)
		}
		if err := migration.GetTableInfo(); err != nil {
			log.Warnf("Failed to read table info: %v", err)
		}
	}

	log.Info("✅ All systems operational!")

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("👋 Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("✅ Server shutdown completed")
	return nil
}
