package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Credential vault. The key is loaded once here and injected into the
	// codec; nothing else in the process reads it.
	EncryptionKey string

	// Price cache (optional; empty disables caching)
	RedisAddr     string
	PriceCacheTTL time.Duration

	// Portfolio sync
	SyncTimeout time.Duration

	// Prediction subsystem
	PythonBin    string
	PredictorDir string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "coinvault"),
		DBPassword: getEnv("DB_PASSWORD", "coinvault"),
		DBName:     getEnv("DB_NAME", "coinvault"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Vault
		EncryptionKey: getEnv("ENCRYPTION_KEY", "fallback-encryption-key-for-dev-only"),

		// Price cache
		RedisAddr: getEnv("REDIS_ADDR", ""),

		// Prediction subsystem
		PythonBin:    getEnv("PYTHON_BIN", "python3"),
		PredictorDir: getEnv("PREDICTOR_DIR", "./predictor"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	config.SyncTimeout = getDuration("SYNC_TIMEOUT", 30*time.Second)
	config.PriceCacheTTL = getDuration("PRICE_CACHE_TTL", time.Minute)

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

// getDuration retrieves a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
