package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodexpress/foodexpress-client/config"
	"github.com/foodexpress/foodexpress-client/internal/devstack"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	logger.Info("Starting FoodExpress devstack", map[string]interface{}{
		"auth_port":         cfg.Devstack.AuthPort,
		"user_port":         cfg.Devstack.UserPort,
		"order_port":        cfg.Devstack.OrderPort,
		"restaurant_port":   cfg.Devstack.RestaurantPort,
		"notification_port": cfg.Devstack.NotificationPort,
		"pid":               os.Getpid(),
	})

	// Initialize database
	db, err := devstack.OpenDatabase(cfg.Devstack)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}

	// Seed demo data (idempotent)
	if err := devstack.Seed(db); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	stack, err := devstack.NewStack(cfg.Devstack, db)
	if err != nil {
		logger.Fatal("Failed to build devstack", err)
	}

	stack.Start()

	// Wait for interrupt signal to gracefully shutdown the services
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down devstack gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stack.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down cleanly", err)
	}

	logger.Info("Devstack stopped successfully")
}
