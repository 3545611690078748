package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Calendar CalendarConfig
	Database DatabaseConfig
	HRAPI    HRAPIConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// CalendarConfig holds session and fetch tuning
type CalendarConfig struct {
	DefaultLocale        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	FetchTimeout         time.Duration
}

type DatabaseConfig struct {
	Enabled    bool
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	EmployeeID string
}

// HRAPIConfig holds the host HR system connection. An empty BaseURL disables it.
type HRAPIConfig struct {
	BaseURL     string
	APIKey      string
	EmployeeID  string
	PTOPagePath string
	Timeout     time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment")
	}

	config := &Config{}
	var errs []error

	config.App = AppConfig{
		Port:               getEnvInt("APP_PORT", 8080, &errs),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.Calendar = CalendarConfig{
		DefaultLocale:        strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
		SessionTTL:           getEnvDuration("SESSION_TTL", 30*time.Minute, &errs),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute, &errs),
		FetchTimeout:         getEnvDuration("FETCH_TIMEOUT", 15*time.Second, &errs),
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Enabled:    getEnvBool("DB_ENABLED", false, &errs),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnvInt("DB_PORT", 5432, &errs),
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		EmployeeID: getEnv("DB_EMPLOYEE_ID", ""),
	}

	config.HRAPI = HRAPIConfig{
		BaseURL:     getEnv("HR_API_BASE_URL", ""),
		APIKey:      getEnv("HR_API_KEY", ""),
		EmployeeID:  getEnv("HR_EMPLOYEE_ID", ""),
		PTOPagePath: getEnv("HR_PTO_PAGE_PATH", "/employees/pto"),
		Timeout:     getEnvDuration("HR_API_TIMEOUT", 10*time.Second, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

var supportedLocales = []string{"en", "fr", "de"}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if !contains(supportedLocales, c.Calendar.DefaultLocale) {
		return fmt.Errorf("DEFAULT_LOCALE must be one of %s", strings.Join(supportedLocales, ", "))
	}
	if c.Calendar.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Calendar.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Calendar.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Database.Enabled {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Database.EmployeeID == "" {
			return fmt.Errorf("DB_EMPLOYEE_ID is required")
		}
	}
	if c.HRAPI.BaseURL != "" {
		if c.HRAPI.EmployeeID == "" {
			return fmt.Errorf("HR_EMPLOYEE_ID is required")
		}
		if c.HRAPI.Timeout <= 0 {
			return fmt.Errorf("HR_API_TIMEOUT must be positive")
		}
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
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

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
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

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
