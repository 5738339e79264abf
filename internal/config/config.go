package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	RateLimit   RateLimitConfig
	Schedule    ScheduleConfig
	Jobs        JobsConfig
	Email       EmailConfig
	Tracing     TracingConfig
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdle        int
	MigrationsPath string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	PublicPerMinute int
	AdminPerMinute  int
}

// ScheduleConfig carries the risk evaluator thresholds. The inline form
// validator's flat four-hour rule is a separate, fixed constant and is not
// configured here.
type ScheduleConfig struct {
	CloseStartThreshold time.Duration
	AssumedGameDuration time.Duration
	TravelTimeThreshold time.Duration
}

type JobsConfig struct {
	Enabled             bool
	DiscoveryRetries    int
	DigestRetries       int
	DiscoverySourcesYML string
}

type EmailConfig struct {
	Enabled      bool
	From         string
	DigestTo     string
	ResendAPIKey string
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
			MaxIdle:        getEnvInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS_PATH", "internal/storage/postgres/migrations"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: getEnvInt("RATE_LIMIT_PUBLIC", 120),
			AdminPerMinute:  getEnvInt("RATE_LIMIT_ADMIN", 0),
		},
		Schedule: ScheduleConfig{
			CloseStartThreshold: time.Duration(getEnvInt("SCHEDULE_CLOSE_START_MINUTES", 120)) * time.Minute,
			AssumedGameDuration: time.Duration(getEnvInt("SCHEDULE_ASSUMED_GAME_MINUTES", 90)) * time.Minute,
			TravelTimeThreshold: time.Duration(getEnvInt("SCHEDULE_TRAVEL_MINUTES", 30)) * time.Minute,
		},
		Jobs: JobsConfig{
			Enabled:             getEnvBool("JOBS_ENABLED", true),
			DiscoveryRetries:    getEnvInt("JOB_RETRY_DISCOVERY", 3),
			DigestRetries:       getEnvInt("JOB_RETRY_DIGEST", 2),
			DiscoverySourcesYML: getEnv("DISCOVERY_SOURCES_FILE", "discovery-sources.yaml"),
		},
		Email: EmailConfig{
			Enabled:      getEnvBool("EMAIL_ENABLED", false),
			From:         getEnv("EMAIL_FROM", ""),
			DigestTo:     getEnv("EMAIL_DIGEST_TO", ""),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			Exporter:     getEnv("TRACING_EXPORTER", "none"),
			ServiceName:  getEnv("TRACING_SERVICE_NAME", "rinkline"),
			OTLPEndpoint: getEnv("TRACING_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Email.Enabled {
		if cfg.Email.From == "" {
			return Config{}, fmt.Errorf("EMAIL_FROM is required when email is enabled")
		}
		if cfg.Email.ResendAPIKey == "" {
			return Config{}, fmt.Errorf("RESEND_API_KEY is required when email is enabled")
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
