package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Pipeline
	PipelineAPIKey   string
	SnapshotSchedule string

	// Reports
	CashFlowDays int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "apex"),
		DBPassword: getEnv("DB_PASSWORD", "apex"),
		DBName:     getEnv("DB_NAME", "apex"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		PipelineAPIKey:   getEnv("PIPELINE_API_KEY", ""),
		SnapshotSchedule: "0 0 * * *",
	}

	// An explicitly empty schedule disables the in-process snapshot job.
	if schedule, ok := os.LookupEnv("SNAPSHOT_SCHEDULE"); ok {
		config.SnapshotSchedule = schedule
	}

	daysStr := getEnv("CASHFLOW_DAYS", "30")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		log.Printf("Warning: invalid CASHFLOW_DAYS value '%s', falling back to 30\n", daysStr)
		days = 30
	}
	config.CashFlowDays = days

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
