package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookConfigGetTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, WebhookConfig{Timeout: 15000}.GetTimeout())
	assert.Equal(t, time.Duration(0), WebhookConfig{}.GetTimeout())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "settlement-quiz", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddress)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "quiz", cfg.Storage.Namespace)
	assert.Equal(t, 15000, cfg.Webhooks.Estimate.Timeout)
	assert.Equal(t, "auto", cfg.Webhooks.Estimate.ResponseFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Webhooks.Estimate.Timeout = 500
	cfg.Storage.Backend = "redis"
	applyDefaults(cfg)

	assert.Equal(t, 500, cfg.Webhooks.Estimate.Timeout)
	assert.Equal(t, "redis", cfg.Storage.Backend)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{}
	applyDefaults(valid)
	require.NoError(t, validateConfig(valid))

	t.Run("redis backend requires an address", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Storage.Backend = "redis"
		assert.Error(t, validateConfig(cfg))

		cfg.Storage.Redis.Address = "localhost:6379"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Storage.Backend = "dynamo"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("unknown response format rejected", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Webhooks.Estimate.ResponseFormat = "xml"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("negative timeout rejected", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Webhooks.Contact.Timeout = -1
		assert.Error(t, validateConfig(cfg))
	})
}
