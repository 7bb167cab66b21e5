package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Startup timeouts

	"storefront/internal/api"    // Custom package for API handlers
	"storefront/internal/config" // Custom package for configuration
	"storefront/internal/db"     // Custom package for database access
	"storefront/internal/shop"   // Custom package for the storefront service
	"storefront/internal/utils"  // Logger setup

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	if err := utils.ConfigureLogger(cfg.IsProd, cfg.LogLevel); err != nil {
		logrus.Fatalf("failed to configure logger: %v", err)
	}

	// Connect to the database and bring the schema up to date
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Seed the administrator account
	svc := shop.NewService(conn)
	created, err := svc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminWallet)
	if err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		logrus.WithField("username", cfg.AdminUsername).Warn("Admin account created with the configured seed password")
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.SetupRouter(svc, redisClient, cfg) // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,  // Listen port
		"driver": cfg.DBDriver, // Database driver
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
