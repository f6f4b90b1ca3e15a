package router

import (
	"time"

	"github.com/fundspace/backend/internal/cache"
	"github.com/fundspace/backend/internal/events"
	"github.com/fundspace/backend/internal/handlers"
	"github.com/fundspace/backend/internal/middleware"
	"github.com/fundspace/backend/internal/models"
	"github.com/fundspace/backend/internal/repositories"
	"github.com/fundspace/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const followStatsTTL = 5 * time.Minute

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, rdb *redis.Client, jwtSecret string, logger *zap.Logger) {
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Follow{},
		&models.Connection{},
		&models.Notification{},
	); err != nil {
		logger.Fatal("auto migration failed", zap.Error(err))
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	orgRepo := repositories.NewPostgresOrganizationRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	connectionRepo := repositories.NewPostgresConnectionRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("fundspace"))

	// --- Core services ---
	var statsCache services.FollowStatsCache
	if rdb != nil {
		statsCache = cache.NewFollowStatsCache(rdb, followStatsTTL)
	}
	broadcaster := events.NewBroadcaster()
	socialGraph := services.NewSocialGraphService(followRepo, connectionRepo, notificationRepo, statsCache, broadcaster, logger)
	mentionResolver := services.NewMentionResolver(userRepo, orgRepo, followRepo, logger)

	// --- Protected routes (require a session) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SessionAuthMiddleware(jwtSecret))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	orgHandler := handlers.NewOrganizationHandler(orgRepo)
	orgHandler.RegisterOrganizationRoutes(api)

	followHandler := handlers.NewFollowHandler(socialGraph, followRepo)
	followHandler.RegisterFollowRoutes(api)

	connectionHandler := handlers.NewConnectionHandler(socialGraph, connectionRepo, userRepo)
	connectionHandler.RegisterConnectionRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	mentionHandler := handlers.NewMentionHandler(mentionResolver)
	mentionHandler.RegisterMentionRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)

	logger.Info("all routes configured")
}
