package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Telegram update modes.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string      `mapstructure:"env"` // current application environment (local, dev, production etc)
	Telegram    Telegram    `mapstructure:"telegram"`
	Day         Day         `mapstructure:"day"`
	Storage     Storage     `mapstructure:"storage"`
	DB          DB          `mapstructure:"database"`
	Redis       Redis       `mapstructure:"redis"`
	Reminders   Reminders   `mapstructure:"reminders"`
	Timer       Timer       `mapstructure:"timer"`
	Leaderboard Leaderboard `mapstructure:"leaderboard"`
	Log         Log         `mapstructure:"log"`
}

// Telegram contains bot transport settings.
type Telegram struct {
	Token             string  `mapstructure:"-"`                   // bot token loaded from environment
	Mode              string  `mapstructure:"mode"`                // polling or webhook
	Debug             bool    `mapstructure:"debug"`               // log raw Bot API traffic
	Timeout           int     `mapstructure:"timeout"`             // long polling timeout in seconds
	WebhookURL        string  `mapstructure:"webhook_url"`         // public base URL, required in webhook mode
	ListenAddr        string  `mapstructure:"listen_addr"`         // HTTP listen address for webhook and health check
	MessagesPerSecond float64 `mapstructure:"messages_per_second"` // outbound rate limit
	Burst             int     `mapstructure:"burst"`
}

// Day configures where logical days start.
type Day struct {
	Timezone  string `mapstructure:"timezone"`   // UTC, UTC+5:30 or an IANA name
	ResetHour int    `mapstructure:"reset_hour"` // local hour a new logical day begins
}

// Storage selects the progress store.
type Storage struct {
	Driver    string `mapstructure:"driver"`
	FilePath  string `mapstructure:"file_path"`
	CacheSize int    `mapstructure:"cache_size"` // LRU entries, 0 disables the cache
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Redis contains redis connection parameters.
type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"-"` // loaded from environment
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Reminders configures the daily nudge job.
type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron expression in the day timezone
}

// Timer limits workout countdowns.
type Timer struct {
	MaxSeconds  int `mapstructure:"max_seconds"`
	UpdateEvery int `mapstructure:"update_every"` // seconds between progress messages
	MaxPerChat  int `mapstructure:"max_per_chat"`
}

// Leaderboard configures /leaderboard.
type Leaderboard struct {
	Size int `mapstructure:"size"`
}

// Log configures the logger and its optional rotating file sink.
type Log struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"` // empty disables the file sink
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location parses the configured day timezone.
func (c *Config) Location() (*time.Location, error) {
	return entities.ParseTimezoneLocation(c.Day.Timezone)
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// .env is optional, real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	if cfg.Telegram.Token == "" {
		return nil, ErrMissingEnvironmentVariables
	}
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("telegram.mode", ModePolling)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.timeout", 60)
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.listen_addr", ":3000")
	v.SetDefault("telegram.messages_per_second", 25)
	v.SetDefault("telegram.burst", 5)

	v.SetDefault("day.timezone", "UTC+5:30")
	v.SetDefault("day.reset_hour", 4)

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.file_path", "data.json")
	v.SetDefault("storage.cache_size", 1024)

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "shadowfit:progress:")

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 20 * * *")

	v.SetDefault("timer.max_seconds", 3600)
	v.SetDefault("timer.update_every", 10)
	v.SetDefault("timer.max_per_chat", 3)

	v.SetDefault("leaderboard.size", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Day.ResetHour < 0 || c.Day.ResetHour > 23 {
		return fmt.Errorf("%w: day.reset_hour must be in [0, 23], got %d", ErrInvalidConfig, c.Day.ResetHour)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: day.timezone: %v", ErrInvalidConfig, err)
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("%w: storage.file_path is empty", ErrInvalidConfig)
		}
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.CacheSize < 0 {
		return fmt.Errorf("%w: storage.cache_size must not be negative", ErrInvalidConfig)
	}

	switch c.Telegram.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Telegram.WebhookURL == "" {
			return fmt.Errorf("%w: telegram.webhook_url is required in webhook mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown telegram.mode %q", ErrInvalidConfig, c.Telegram.Mode)
	}

	if c.Timer.MaxSeconds < 1 || c.Timer.UpdateEvery < 1 {
		return fmt.Errorf("%w: timer limits must be positive", ErrInvalidConfig)
	}
	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("%w: leaderboard.size must be positive", ErrInvalidConfig)
	}

	return nil
}
