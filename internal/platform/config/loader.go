package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads config.yaml (if present), merges OSCA_* environment overrides,
// and applies defaults so the service runs out of the box.
func Load() (*Config, error) {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("OSCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "oscahub"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Auth.JWTSigningKey == "" {
		// Development default; override in any real deployment.
		cfg.Auth.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 12 * time.Hour
	}
	if cfg.Auth.Remote.Timeout == 0 {
		cfg.Auth.Remote.Timeout = 5 * time.Second
	}
	if cfg.Notifications.QueueSize == 0 {
		cfg.Notifications.QueueSize = 1024
	}
	if cfg.Notifications.SMS.Timeout == 0 {
		cfg.Notifications.SMS.Timeout = 10 * time.Second
	}
	if cfg.Notifications.Email.Timeout == 0 {
		cfg.Notifications.Email.Timeout = 10 * time.Second
	}
	if cfg.Insight.Timeout == 0 {
		cfg.Insight.Timeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
