package router

import (
	"log"

	"github.com/HasanApplore/Harmony.AI/internal/handlers"
	"github.com/HasanApplore/Harmony.AI/internal/middleware"
	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/HasanApplore/Harmony.AI/internal/repositories"
	"github.com/HasanApplore/Harmony.AI/internal/services"
	"github.com/HasanApplore/Harmony.AI/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Connection{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	if err := repositories.MigrateConnectionIndexes(pgdb); err != nil {
		log.Fatalf("Failed to create connection indexes: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	connectionRepo := repositories.NewPostgresConnectionRepository(pgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mgClient.Database("harmony"))

	// --- Services ---
	connectionService := services.NewConnectionService(connectionRepo, userRepo, notificationRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User and discovery routes
	userHandler := handlers.NewUserHandler(userRepo, connectionService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Connection routes
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	connectionHandler.RegisterConnectionRoutes(api)
	log.Println("Connection routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
