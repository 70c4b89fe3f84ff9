package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/cmd"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/core/container"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/core/logger"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/database"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/middleware"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/routes"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("could not connect to the database: " + err.Error())
	}
	defer db.Close()

	zapLogger.Info("Connected to the database successfully")

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.RunMigrations(db, "./migrations"); err != nil {
			zapLogger.Fatal("database migration failed: " + err.Error())
		}
	}

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	routes.RegisterUtilityRoutes(router, zapLogger)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
