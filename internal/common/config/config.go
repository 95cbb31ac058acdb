// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Webhooks WebhooksConfig `mapstructure:"webhooks"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	MetricsAddress  string `mapstructure:"metrics_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type StorageConfig struct {
	// Backend selects the answer store implementation: "redis" or "memory".
	Backend   string      `mapstructure:"backend"`
	Namespace string      `mapstructure:"namespace"`
	Redis     RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WebhooksConfig holds the two outbound endpoints. An empty URL puts the
// corresponding client in fallback-only (estimate) or log-only (contact) mode.
type WebhooksConfig struct {
	Estimate WebhookConfig `mapstructure:"estimate"`
	Contact  WebhookConfig `mapstructure:"contact"`
}

type WebhookConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
	// ResponseFormat: "auto" unwraps the [{message:{content}}] proxy shape,
	// "plain" expects the estimate object directly.
	ResponseFormat string `mapstructure:"response_format"`
}

// GetTimeout returns the webhook timeout as a duration.
func (w WebhookConfig) GetTimeout() time.Duration {
	return time.Duration(w.Timeout) * time.Millisecond
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
