package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Vision provider configuration
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	// Image storage configuration
	S3Bucket  string
	AWSRegion string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "5000"),
		ServerHost:   getEnv("SERVER_HOST", "0.0.0.0"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       getEnv("DB_NAME", "nutrilens"),
		DBSSLMode:    getEnv("DB_SSL_MODE", "disable"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:    os.Getenv("AWS_REGION"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
