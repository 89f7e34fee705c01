package main

import (
	"log"

	"github.com/HasanApplore/Harmony.AI/internal/router"
	"github.com/HasanApplore/Harmony.AI/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	cfg := config.Load()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
