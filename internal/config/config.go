package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Catalog fallbacks, kept as named constants so the default behavior
// is visible in one place.
const (
	DefaultCategory     = "Ikan Air Tawar" // category applied when none is given
	DefaultPhotographer = "Unknown"        // shown when an entry has no photographer
)

type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	FrontendURL          string  // frontend base URL, used for entry share QR codes
	JWTSecret            string  // secret key for JWT token signing
	JWTTTLHours          int     // JWT token validity window in hours
	UploadDir            string  // local directory for uploaded images
	MaxUploadBytes       int64   // hard cap on a single uploaded image
	EphemeralFS          bool    // serverless target: no persistent disk, uploads disabled
	RateLimitRPS         float64 // rate limit for general API endpoints (requests per second)
	RateLimitBurst       int
	RateLimitAuthRPS     float64 // stricter limit for auth endpoints
	RateLimitAuthBurst   int
	RateLimitUploadRPS   float64 // stricter limit for entry creation/update
	RateLimitUploadBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTTTLHours:          getEnvInt("JWT_TTL_HOURS", 168), // 7 days
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:       getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
		EphemeralFS:          getEnvBool("EPHEMERAL_FS", false),
		RateLimitRPS:         getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:       getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:     getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:   getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitUploadRPS:   getEnvFloat("RATE_LIMIT_UPLOAD_RPS", 2),
		RateLimitUploadBurst: getEnvInt("RATE_LIMIT_UPLOAD_BURST", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
