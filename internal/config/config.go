package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SweepLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	Timezone           string // IANA name used to anchor reminder windows
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SchedulerConfig struct {
	Enabled      bool
	ExpirySpec   string // standard 5-field cron expression
	SweepTimeout time.Duration
}

type CacheConfig struct {
	PlanTTL time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SweepLogFilePath:   getEnv("SWEEP_LOG_FILE_PATH", "logs/expiry-sweep.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
			Timezone:           getEnv("APP_TIMEZONE", "UTC"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:      getEnvAsBool("EXPIRY_SWEEP_ENABLED", true),
			ExpirySpec:   getEnv("EXPIRY_SWEEP_CRON", "0 */12 * * *"),
			SweepTimeout: getEnvAsDuration("EXPIRY_SWEEP_TIMEOUT", 2*time.Minute),
		},
		Cache: CacheConfig{
			PlanTTL: getEnvAsDuration("PLAN_CACHE_TTL", 30*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Location resolves App.Timezone, falling back to UTC on an unknown zone name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		log.Printf("[WARN] Unknown APP_TIMEZONE %q, using UTC", c.App.Timezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "12h") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
