package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string `mapstructure:"env"`          // local, dev, production
	Port        string `mapstructure:"port"`         // HTTP listen port
	DatabaseURL string `mapstructure:"database_url"` // postgres:// or sqlite: DSN
	RedisURL    string `mapstructure:"redis_url"`    // optional, empty disables caching
	AppURL      string `mapstructure:"app_url"`      // public origin, empty means derive from the request
	DB          DB     `mapstructure:"database"`
	Worker      Worker `mapstructure:"worker"`
}

// DB contains connection pool settings.
type DB struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Worker configures the scheduled task loop.
type Worker struct {
	Interval time.Duration `mapstructure:"interval"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from ./config/config.yaml (if present) and the environment.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom loads configuration using a caller-provided viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "sqlite:trivia.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("app_url", "")
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("worker.interval", "5m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("app_url", "APP_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: database_url is empty", ErrInvalidConfig)
	}
	if cfg.Worker.Interval <= 0 {
		return nil, fmt.Errorf("%w: worker.interval must be positive", ErrInvalidConfig)
	}
	cfg.AppURL = strings.TrimSuffix(cfg.AppURL, "/")

	return &cfg, nil
}
