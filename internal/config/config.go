package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Store    StoreConfig
	Payroll  PayrollConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the rate cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	SeedFile       string // optional JSON list of companies saved at startup
}

type StoreConfig struct {
	Backend string // memory, postgres
}

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

type PayrollConfig struct {
	DeductionDebounce time.Duration
	SentinelCompany   string
	LegacyMonthBase   int
}

type CronConfig struct {
	CacheWarmInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CCSS_CACHE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CCSS_CACHE_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		TTL:      cacheTTL,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		SeedFile:       getEnv("SEED_FILE", ""),
	}

	config.Store = StoreConfig{
		Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory)),
	}

	debounce, err := time.ParseDuration(getEnv("DEDUCTION_DEBOUNCE", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUCTION_DEBOUNCE: %w", err)
	}
	monthBase, err := strconv.Atoi(getEnv("SHIFT_LEGACY_MONTH_BASE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_LEGACY_MONTH_BASE: %w", err)
	}

	config.Payroll = PayrollConfig{
		DeductionDebounce: debounce,
		SentinelCompany:   getEnv("PAYROLL_SENTINEL_COMPANY", "test"),
		LegacyMonthBase:   monthBase,
	}

	warmInterval, err := time.ParseDuration(getEnv("CRON_CACHE_WARM_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_CACHE_WARM_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{CacheWarmInterval: warmInterval}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", StoreBackendMemory, StoreBackendPostgres)
	}
	if c.Payroll.LegacyMonthBase != 0 && c.Payroll.LegacyMonthBase != 1 {
		return fmt.Errorf("SHIFT_LEGACY_MONTH_BASE must be 0 or 1")
	}
	if c.Payroll.DeductionDebounce <= 0 {
		return fmt.Errorf("DEDUCTION_DEBOUNCE must be positive")
	}
	if c.Cron.CacheWarmInterval <= 0 {
		return fmt.Errorf("CRON_CACHE_WARM_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
