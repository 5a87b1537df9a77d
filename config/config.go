package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Session SessionConfig
	CORS    CORSConfig
	S3      S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// StorageConfig selects and configures the key-value persistence backend.
type StorageConfig struct {
	Backend    string // memory, file, redis, postgres
	FilePath   string
	QuotaBytes int64
	Redis      RedisConfig
	Postgres   PostgresConfig
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	JWTSecret string
	Duration  time.Duration
	// Bcrypt hash of the admin password. When empty the server falls back
	// to hashing the well-known demo password at startup.
	AdminPasswordHash string
	SweepSchedule     string // cron spec for the expired-session sweep
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", "file"),
			FilePath:   getEnv("STORAGE_FILE_PATH", "./data/kps-admin.json"),
			QuotaBytes: parseInt64(getEnv("STORAGE_QUOTA_BYTES", "5242880")),
			Redis: RedisConfig{
				Host:      getEnv("REDIS_HOST", "localhost"),
				Port:      getEnv("REDIS_PORT", "6379"),
				Password:  getEnv("REDIS_PASSWORD", ""),
				DB:        int(parseInt64(getEnv("REDIS_DB", "0"))),
				KeyPrefix: getEnv("REDIS_KEY_PREFIX", "kpsadmin:"),
			},
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "admin"),
				Password: getEnv("DB_PASSWORD", "1234"),
				DBName:   getEnv("DB_NAME", "kpsadmin"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		Session: SessionConfig{
			JWTSecret:         getEnv("SESSION_JWT_SECRET", "your-secret-key"),
			Duration:          parseDuration(getEnv("SESSION_DURATION", "24h")),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			SweepSchedule:     getEnv("SESSION_SWEEP_SCHEDULE", "@every 15m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	return config, nil
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 24h", s)
		return 24 * time.Hour
	}
	return duration
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using 0", s)
		return 0
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		result = append(result, strings.TrimSpace(p))
	}
	return result
}
