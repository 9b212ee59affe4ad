package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// SSOT: all environment variables are read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External providers
	Providers ProviderConfig

	// Screening
	Screener ScreenerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ProviderConfig holds base URLs for the market data providers
type ProviderConfig struct {
	EastmoneyBaseURL string
	TencentBaseURL   string
	SinaBaseURL      string

	// Per-request network timeout applied by each adapter
	RequestTimeout time.Duration
}

// ScreenerConfig holds screening run defaults
type ScreenerConfig struct {
	MAWindows      []int         // moving average window lengths, ascending
	LookbackDays   int           // recent bars scanned for crossovers
	MinHistoryDays int           // minimum bars for screening eligibility
	FetchDays      int           // calendar days of history requested per symbol
	MaxSymbols     int           // universe cap, 0 = unlimited
	PaceDelay      time.Duration // delay between external requests
}

// Load reads configuration from environment variables
// SSOT: this is the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8098"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Providers: ProviderConfig{
			EastmoneyBaseURL: getEnv("EASTMONEY_BASE_URL", "https://push2his.eastmoney.com"),
			TencentBaseURL:   getEnv("TENCENT_BASE_URL", "https://web.ifzq.gtimg.cn"),
			SinaBaseURL:      getEnv("SINA_BASE_URL", "https://money.finance.sina.com.cn"),
			RequestTimeout:   getEnvAsDuration("PROVIDER_TIMEOUT", "10s"),
		},

		Screener: ScreenerConfig{
			MAWindows:      getEnvAsInts("MA_WINDOWS", []int{5, 10, 20, 30, 60}),
			LookbackDays:   getEnvAsInt("LOOKBACK_DAYS", 3),
			MinHistoryDays: getEnvAsInt("MIN_HISTORY_DAYS", 60),
			FetchDays:      getEnvAsInt("FETCH_DAYS", 120),
			MaxSymbols:     getEnvAsInt("MAX_SYMBOLS", 0),
			PaceDelay:      getEnvAsDuration("PACE_DELAY", "100ms"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Screener.MAWindows) < 2 {
		return fmt.Errorf("MA_WINDOWS needs a fast window and at least one slow window")
	}
	for i := 1; i < len(c.Screener.MAWindows); i++ {
		if c.Screener.MAWindows[i] <= c.Screener.MAWindows[i-1] {
			return fmt.Errorf("MA_WINDOWS must be strictly ascending")
		}
	}

	if c.Screener.LookbackDays < 1 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsInts parses a comma-separated list of integers
func getEnvAsInts(key string, defaultValue []int) []int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		values = append(values, v)
	}
	return values
}
