package initializers

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver       string
	DatabaseURL    string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int

	JWTSecret         string
	JWTTTL            time.Duration
	TrustedHeaderAuth bool

	AllowedOrigins []string

	AWSRegion   string
	S3Bucket    string
	S3KeyPrefix string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	FilterCacheTTL time.Duration

	LogMode string
	LogFile string

	MaxUploadMB int64
}

// LoadConfig reads the configuration from the environment, applying defaults
// for everything but the JWT secret.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:    env("PORT", "8080"),
		GinMode: env("GIN_MODE", "debug"),

		DBDriver:       strings.ToLower(env("DB_DRIVER", "mysql")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         env("DB_HOST", "127.0.0.1"),
		DBPort:         cast.ToInt(env("DB_PORT", "3306")),
		DBUser:         env("DB_USER", "root"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         env("DB_NAME", "mobistore"),
		DBMaxOpenConns: cast.ToInt(env("DB_MAX_OPEN_CONNS", "25")),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            cast.ToDuration(env("JWT_TTL", "24h")),
		TrustedHeaderAuth: cast.ToBool(env("TRUSTED_HEADER_AUTH", "false")),

		AllowedOrigins: splitList(env("ALLOWED_ORIGINS", "http://localhost:3000")),

		AWSRegion:   os.Getenv("AWS_REGION"),
		S3Bucket:    os.Getenv("AWS_S3_BUCKET_NAME"),
		S3KeyPrefix: env("S3_KEY_PREFIX", "products"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        cast.ToInt(env("REDIS_DB", "0")),
		FilterCacheTTL: cast.ToDuration(env("FILTER_CACHE_TTL", "10m")),

		LogMode: env("LOG_MODE", "development"),
		LogFile: os.Getenv("LOG_FILE"),

		MaxUploadMB: cast.ToInt64(env("MAX_UPLOAD_MB", "10")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 24 * time.Hour
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}

// DSN builds the connection string for the configured driver unless
// DATABASE_URL is set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
