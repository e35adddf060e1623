package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Insights InsightsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// InsightsConfig controls the industry insight refresh policy. A persisted
// record older than StalenessWindow is eligible for background regeneration;
// NextUpdate on a freshly written record is last_updated + RefreshInterval.
type InsightsConfig struct {
	StalenessWindow time.Duration
	RefreshInterval time.Duration
	MemoTTL         time.Duration
	RefreshWorkers  int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "career-coach"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:      secondsEnv("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:        int32(intEnv("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:        int32(intEnv("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: secondsEnv("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 0),
		PoolMaxConnIdleTime: secondsEnv("DB_POOL_MAX_CONN_IDLE_SECONDS", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  minutesEnv("JWT_ACCESS_EXPIRES_MINUTES", 15*time.Minute),
		RefreshExpiresIn: minutesEnv("JWT_REFRESH_EXPIRES_MINUTES", 7*24*time.Hour),
	}

	cfg.Gemini = GeminiConfig{
		APIKey: opt("GEMINI_API_KEY", ""),
		Model:  opt("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	cfg.Insights = InsightsConfig{
		StalenessWindow: daysEnv("INSIGHTS_STALENESS_DAYS", 6*24*time.Hour),
		RefreshInterval: daysEnv("INSIGHTS_REFRESH_DAYS", 7*24*time.Hour),
		MemoTTL:         secondsEnv("INSIGHTS_MEMO_TTL_SECONDS", time.Hour),
		RefreshWorkers:  intEnv("INSIGHTS_REFRESH_WORKERS", 2),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func secondsEnv(key string, def time.Duration) time.Duration {
	return unitEnv(key, def, time.Second)
}

func minutesEnv(key string, def time.Duration) time.Duration {
	return unitEnv(key, def, time.Minute)
}

func daysEnv(key string, def time.Duration) time.Duration {
	return unitEnv(key, def, 24*time.Hour)
}

func unitEnv(key string, def time.Duration, unit time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * unit
}
