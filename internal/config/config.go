package config

import (
	"errors"  // Validation errors
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Durations for token and cache lifetimes

	"github.com/joho/godotenv" // For loading .env files
)

// Storage backends
const (
	BackendMemory = "memory" // Process-lifetime store, the default
	BackendSQL    = "sql"    // GORM store on DB_DRIVER
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	JWTSecret    string        // JWT secret key
	TokenTTL     time.Duration // Token validity window
	StoreBackend string        // memory or sql
	DBDriver     string        // mysql or sqlite
	DBUser       string        // Database user
	DBPassword   string        // Database password
	DBHost       string        // Database host
	DBPort       string        // Database port
	DBName       string        // Database name
	SQLitePath   string        // SQLite file path
	RedisAddr    string        // Redis server address, empty disables caching
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	CacheTTL     time.Duration // Lifetime of cached month views
	IsProd       bool          // Is production environment
}

// DefaultJWTSecret is only accepted outside production
const DefaultJWTSecret = "your-secret-key"

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:      getEnv("APP_PORT", "3000"),               // Application port
		JWTSecret:    getEnv("JWT_SECRET", DefaultJWTSecret),   // JWT secret key
		TokenTTL:     getDuration("TOKEN_TTL", time.Hour),      // Tokens live one hour
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),   // Storage backend
		DBDriver:     getEnv("DB_DRIVER", "mysql"),             // Database driver
		DBUser:       os.Getenv("DB_USER"),                     // Database user
		DBPassword:   os.Getenv("DB_PASSWORD"),                 // Database password
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),           // Database host
		DBPort:       getEnv("DB_PORT", "3306"),                // Database port
		DBName:       os.Getenv("DB_NAME"),                     // Database name
		SQLitePath:   getEnv("SQLITE_PATH", "budget.db"),       // SQLite file
		RedisAddr:    os.Getenv("REDIS_ADDR"),                  // Redis server address
		RedisPass:    os.Getenv("REDIS_PASS"),                  // Redis password
		RedisDB:      redisDB,                                  // Redis database number
		CacheTTL:     getDuration("CACHE_TTL", 60*time.Second), // Cache lifetime
		IsProd:       os.Getenv("IS_PROD") == "true",           // Is production environment
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.AppPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid APP_PORT %q", c.AppPort))
	}
	if c.JWTSecret == "" || (c.IsProd && c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQL:
		if c.DBDriver != "mysql" && c.DBDriver != "sqlite" {
			errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
		}
		if c.DBDriver == "mysql" && c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for mysql"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_BACKEND %q", c.StoreBackend))
	}
	return errors.Join(errs...)
}

// getEnv returns the variable or fallback when it is unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration, falling back on unset or bad values
func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
