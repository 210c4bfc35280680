package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
	SessionBackendJWT    = "jwt"
)

type Config struct {
	AppEnv  string
	AppPort string
	GinMode string

	DBDriver string
	DBDSN    string

	SessionBackend string
	SessionSecret  string
	SessionCookie  string
	SessionMaxAge  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Init بارگذاری تنظیمات از .env و متغیرهای محیطی
func Init() *Config {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := Load()
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	return cfg
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         getenv("APP_ENV", "development"),
		AppPort:        getenv("APP_PORT", "8000"),
		GinMode:        os.Getenv("GIN_MODE"),
		DBDriver:       getenv("DB_DRIVER", "mysql"),
		DBDSN:          os.Getenv("DB_DSN"),
		SessionBackend: getenv("SESSION_BACKEND", SessionBackendCookie),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionCookie:  getenv("SESSION_COOKIE", "sessionid"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
	}

	maxAge, err := strconv.Atoi(getenv("SESSION_MAX_AGE", "1209600"))
	if err != nil || maxAge <= 0 {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be a positive number of seconds")
	}
	cfg.SessionMaxAge = time.Duration(maxAge) * time.Second

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}

	switch cfg.SessionBackend {
	case SessionBackendCookie, SessionBackendJWT:
	case SessionBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
