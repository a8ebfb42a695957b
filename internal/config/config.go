package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	CORS     CORSConfig
	Overtime OvertimeConfig

	Notifications NotificationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32

	AutoMigrate bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// NotificationConfig controls how long read alerts are kept
type NotificationConfig struct {
	RetentionDays int
	PurgeInterval time.Duration
}

// Retention is how long read notifications are kept.
func (c NotificationConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// OvertimeConfig holds the overtime policy settings
type OvertimeConfig struct {
	Limits        OvertimeLimits
	BranchAliases []overtime.BranchAlias
}

// OvertimeLimits are the legal overtime limits used for alerts
type OvertimeLimits struct {
	MaxWeeklyHours   decimal.Decimal
	MaxSaturdayHours decimal.Decimal
	WarningRatio     decimal.Decimal
}

const defaultBranchAliases = "split_shift=sao jose"

func Load() (*Config, error) {
	loadDotEnv()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "overtime"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),

		AutoMigrate: getEnv("DB_AUTO_MIGRATE", "false") == "true",
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "overtime-backend"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.Overtime, err = loadOvertime()
	if err != nil {
		return nil, err
	}

	retentionDays, err := strconv.Atoi(getEnv("NOTIFICATION_RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_RETENTION_DAYS: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("NOTIFICATION_PURGE_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFICATION_PURGE_INTERVAL: %w", err)
	}

	config.Notifications = NotificationConfig{
		RetentionDays: retentionDays,
		PurgeInterval: purgeInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadOvertime loads only the overtime settings. Used by tools that do not touch the database.
func LoadOvertime() (OvertimeConfig, error) {
	loadDotEnv()
	return loadOvertime()
}

func loadOvertime() (OvertimeConfig, error) {
	weekly, err := decimal.NewFromString(getEnv("OVERTIME_MAX_WEEKLY_HOURS", "40"))
	if err != nil {
		return OvertimeConfig{}, fmt.Errorf("invalid OVERTIME_MAX_WEEKLY_HOURS: %w", err)
	}
	saturday, err := decimal.NewFromString(getEnv("OVERTIME_MAX_SATURDAY_HOURS", "16"))
	if err != nil {
		return OvertimeConfig{}, fmt.Errorf("invalid OVERTIME_MAX_SATURDAY_HOURS: %w", err)
	}
	ratio, err := decimal.NewFromString(getEnv("OVERTIME_WARNING_RATIO", "0.9"))
	if err != nil {
		return OvertimeConfig{}, fmt.Errorf("invalid OVERTIME_WARNING_RATIO: %w", err)
	}

	aliases, err := ParseBranchAliases(getEnv("OVERTIME_BRANCH_ALIASES", defaultBranchAliases))
	if err != nil {
		return OvertimeConfig{}, fmt.Errorf("invalid OVERTIME_BRANCH_ALIASES: %w", err)
	}

	cfg := OvertimeConfig{
		Limits: OvertimeLimits{
			MaxWeeklyHours:   weekly,
			MaxSaturdayHours: saturday,
			WarningRatio:     ratio,
		},
		BranchAliases: aliases,
	}
	if err := cfg.Validate(); err != nil {
		return OvertimeConfig{}, err
	}
	return cfg, nil
}

// ParseBranchAliases parses "key=match|match;key=match" into an ordered alias table.
func ParseBranchAliases(value string) ([]overtime.BranchAlias, error) {
	var aliases []overtime.BranchAlias
	for _, group := range strings.Split(value, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		keyStr, matches, ok := strings.Cut(group, "=")
		if !ok {
			return nil, fmt.Errorf("missing '=' in %q", group)
		}
		key, ok := overtime.ParseBranchKey(strings.TrimSpace(keyStr))
		if !ok {
			return nil, fmt.Errorf("%w: %q", overtime.ErrUnknownBranchKey, keyStr)
		}
		for _, m := range strings.Split(matches, "|") {
			if m = strings.TrimSpace(m); m != "" {
				aliases = append(aliases, overtime.BranchAlias{Match: m, Key: key})
			}
		}
	}
	return aliases, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Notifications.RetentionDays < 1 {
		return fmt.Errorf("NOTIFICATION_RETENTION_DAYS must be at least 1")
	}
	if c.Notifications.PurgeInterval < time.Minute {
		return fmt.Errorf("NOTIFICATION_PURGE_INTERVAL must be at least 1m")
	}
	return c.Overtime.Validate()
}

// Validate validates the overtime settings
func (c OvertimeConfig) Validate() error {
	if c.Limits.MaxWeeklyHours.IsNegative() {
		return fmt.Errorf("OVERTIME_MAX_WEEKLY_HOURS must not be negative")
	}
	if c.Limits.MaxSaturdayHours.IsNegative() {
		return fmt.Errorf("OVERTIME_MAX_SATURDAY_HOURS must not be negative")
	}
	if !c.Limits.WarningRatio.IsPositive() || c.Limits.WarningRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("OVERTIME_WARNING_RATIO must be in (0, 1]")
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

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
