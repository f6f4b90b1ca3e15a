package main

import (
	"log"

	"github.com/fundspace/backend/internal/router"
	"github.com/fundspace/backend/pkg/config"
	"github.com/fundspace/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Redis is optional; without it follow stats skip the cache
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		logger.Fatal("failed to initialize redis", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, rdb, cfg.JWTSecret, logger)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	logger.Fatal("server stopped", zap.Error(e.Start(":"+cfg.Port)))
}
