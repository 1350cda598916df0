package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AuthTokenSecret  string // Required: HS256 secret for staff access tokens
	ShareTokenSecret string // Required: HS256 secret for share credentials, must differ from the auth secret
	Issuer           string // Optional: issuer claim for access tokens (default: brightpath)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./brightpath.db)
	AppBaseURL   string        // Optional: external base URL used in share links (default: http://localhost:8080)
	ShareTTL     time.Duration // Optional: share credential lifetime (default: 1h)

	SMTPHost     string // Optional: no mail is sent when empty
	SMTPPort     int    // Optional: SMTP port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // Sender address for all outbound mail

	S3Bucket        string // Optional: CV storage bucket; uploads are disabled when empty
	S3Region        string
	S3Endpoint      string // Optional: set for MinIO or other S3-compatible stores
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string // Optional: serve CV links from a public CDN instead of presigning

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		AuthTokenSecret:  os.Getenv("AUTH_TOKEN_SECRET"),
		ShareTokenSecret: os.Getenv("SHARE_TOKEN_SECRET"),
		Issuer:           getEnvOrDefault("AUTH_ISSUER", "brightpath"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "brightpath.db"),
		AppBaseURL:   getEnvOrDefault("APP_BASE_URL", "http://localhost:8080"),
		ShareTTL:     getEnvDurationOrDefault("SHARE_TOKEN_TTL", time.Hour),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Both secrets are hard requirements: a share credential signed with the
	// auth secret would let an access token pass as a share link.
	if cfg.AuthTokenSecret == "" {
		return Config{}, errors.New("AUTH_TOKEN_SECRET is required")
	}
	if cfg.ShareTokenSecret == "" {
		return Config{}, errors.New("SHARE_TOKEN_SECRET is required")
	}
	if cfg.ShareTokenSecret == cfg.AuthTokenSecret {
		return Config{}, errors.New("SHARE_TOKEN_SECRET must differ from AUTH_TOKEN_SECRET")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
