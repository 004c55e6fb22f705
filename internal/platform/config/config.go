// Package config loads service configuration from a YAML file with
// environment overrides.
package config

import (
	"time"
)

// Config is the root configuration for the portal backend.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Redis         RedisConfig        `mapstructure:"redis"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Insight       InsightConfig      `mapstructure:"insight"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig covers both the locally issued JWTs and the remote
// authentication backend used for first-tier login and account replication.
type AuthConfig struct {
	JWTSigningKey string        `mapstructure:"jwt_signing_key"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	Remote        RemoteAuth    `mapstructure:"remote"`
}

type RemoteAuth struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig is optional; with no URL the session store stays in memory.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type NotificationConfig struct {
	SMS   SMSGateway   `mapstructure:"sms"`
	Email EmailGateway `mapstructure:"email"`
	// QueueSize bounds the outbox; oldest events are dropped when full.
	QueueSize int `mapstructure:"queue_size"`
}

// SMSGateway describes the HTTP SMS provider. The provider takes a GET
// request with query parameters and answers with a bare integer body.
type SMSGateway struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// EmailGateway describes the HTTP email provider (JSON POST, Basic Auth).
type EmailGateway struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// InsightConfig points at the generative text API used for the admin
// dashboard digest. With no API key the service reports "unavailable".
type InsightConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
