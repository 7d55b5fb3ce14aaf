package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBannedWords is the moderation list used when BANNED_WORDS is unset.
var DefaultBannedWords = []string{"heck", "darn", "frick", "shoot", "crud"}

type Config struct {
	App struct {
		ENV       string
		PublicDir string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		Host string
		Port string
	}

	Auth struct {
		JWTSecret     string
		TokenTTLHours int
		AdminPassword string
	}

	Moderation struct {
		BannedWords []string
	}

	Storage struct {
		Endpoint  string
		Region    string
		Bucket    string
		AccessKey string
		SecretKey string
	}
}

func New() *Config {
	// .env is optional; deployments normally set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := &Config{}

	// App
	cfg.App.ENV = getEnvDefault("APP_ENV", "development")
	cfg.App.PublicDir = getEnvDefault("PUBLIC_DIR", "public")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "http_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.DSN = os.Getenv("POSTGRES_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
		cfg.DB.User = getEnvDefault("DB_USER", "doggr")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "doggr")
		cfg.DB.Name = getEnvDefault("DB_NAME", "doggr")
		cfg.DB.SSLMode = getEnvDefault("DB_SSLMODE", "disable")

		cfg.DB.DSN = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
		)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "0.0.0.0")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	// Auth
	cfg.Auth.JWTSecret = getEnvDefault("JWT_SECRET", "dev-secret-change-me")
	cfg.Auth.TokenTTLHours = 24
	if ttlStr := os.Getenv("TOKEN_TTL_HOURS"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil && ttl > 0 {
			cfg.Auth.TokenTTLHours = ttl
		}
	}
	cfg.Auth.AdminPassword = getEnvDefault("ADMIN_PASSWORD", "")

	// Moderation
	cfg.Moderation.BannedWords = DefaultBannedWords
	if raw := os.Getenv("BANNED_WORDS"); strings.TrimSpace(raw) != "" {
		var words []string
		for _, w := range strings.Split(raw, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			cfg.Moderation.BannedWords = words
		}
	}

	// Object storage (MinIO in development, any S3-compatible store in production)
	cfg.Storage.Endpoint = getEnvDefault("S3_ENDPOINT", "http://localhost:9000")
	cfg.Storage.Region = getEnvDefault("S3_REGION", "us-east-1")
	cfg.Storage.Bucket = getEnvDefault("S3_BUCKET", "doggr")
	cfg.Storage.AccessKey = getEnvDefault("S3_ACCESS_KEY", "minioUser")
	cfg.Storage.SecretKey = getEnvDefault("S3_SECRET_KEY", "minioPass")

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
