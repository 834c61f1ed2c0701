package main

import (
	"fmt"
	"os"
	"time"

	"apexfinance/internal/app"
	"apexfinance/internal/config"
	"apexfinance/internal/database"
	"apexfinance/internal/logger"
	"apexfinance/internal/scheduler"
)

// @title           Apex Finance API
// @version         1.0
// @description     Apex tracks personal and professional workspaces, hierarchical categories, goals and the Apex Score.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key
// @description Shared key for the snapshot pipeline endpoints.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	svcs := app.NewServices(dbManager.DB(), appConfig)
	router := app.NewRouter(svcs, appConfig)

	if appConfig.SnapshotSchedule != "" {
		sched := scheduler.New(time.UTC)
		if _, err := sched.ScheduleSnapshots(appConfig.SnapshotSchedule, svcs.Snapshots); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		log.Infof("Score snapshots scheduled with %q", appConfig.SnapshotSchedule)
	}

	if appConfig.PipelineAPIKey == "" {
		log.Warn("PIPELINE_API_KEY is not set; pipeline endpoints are disabled")
	}

	log.Infof("Starting Apex Finance server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
