package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	StaticFilesPath string

	SessionSecret   string
	SessionDuration time.Duration

	// Scoring awards; the settings table overrides these at startup.
	FullAward int
	HintAward int

	// Initial bank passcode, hashed into settings on first run. Empty
	// leaves bank management unprotected.
	BankPasscode string

	// Progress report email (disabled when FromEmail is empty).
	AWSRegion    string
	FromEmail    string
	FromName     string
	ParentEmail  string
	AppBaseURL   string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./wordscramble.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-only-secret"),
		SessionDuration: 24 * time.Hour,
		FullAward:       getEnvInt("SCORE_FULL_AWARD", 2),
		HintAward:       getEnvInt("SCORE_HINT_AWARD", 1),
		BankPasscode:    getEnv("BANK_PASSCODE", ""),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		FromEmail:       getEnv("SES_FROM_EMAIL", ""),
		FromName:        getEnv("SES_FROM_NAME", "WordScramble"),
		ParentEmail:     getEnv("PARENT_EMAIL", ""),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
