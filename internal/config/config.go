// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DB
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	// Auth
	JWTSecret     string
	TokenTTLHours int

	// Seed admin account
	AdminUsername string
	AdminPassword string

	// LLM (smart assistant)
	LLMAPIURL         string
	LLMAPIKey         string
	LLMModel          string
	LLMTimeoutSeconds int
	LLMMaxTokens      int

	// Coze workflow automation
	CozeAPIURL         string
	CozeAPIKey         string
	CozeTimeoutSeconds int

	// SMTP (low-stock alert reports)
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	SMTPHost       string
	SMTPPort       int
	SMTPFromName   string
	AlertRecipient string

	// R2 Storage (product images)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string

	// CORS
	AllowedOrigins string
}

func Load() *Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8086"
	}

	return &Config{
		ServerPort: port,

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "inventory_db"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		LLMAPIURL:         getEnv("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		LLMAPIKey:         os.Getenv("LLM_API_KEY"),
		LLMModel:          os.Getenv("LLM_MODEL"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		LLMMaxTokens:      getEnvInt("LLM_MAX_TOKENS", 1024),

		CozeAPIURL:         getEnv("COZE_API_URL", "https://api.coze.cn"),
		CozeAPIKey:         os.Getenv("COZE_API_KEY"),
		CozeTimeoutSeconds: getEnvInt("COZE_TIMEOUT_SECONDS", 30),

		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPFromName:   getEnv("SMTP_FROM_NAME", "Inventory Service"),
		AlertRecipient: os.Getenv("LOW_STOCK_ALERT_TO"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
