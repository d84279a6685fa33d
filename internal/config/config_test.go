package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Cart.IdleTimeout)
	assert.True(t, cfg.Shipping.FreeThreshold.Equal(decimal.NewFromInt(500)))
	assert.True(t, cfg.Shipping.StandardCost.Equal(decimal.NewFromInt(50)))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "0s")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "750")
	t.Setenv("STORAGE_DRIVER", "Postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.True(t, cfg.Shipping.FreeThreshold.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, "postgres", cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"relative base url": {"API_BASE_URL", "localhost:5000"},
		"bad timeout":       {"API_TIMEOUT", "soon"},
		"zero threshold":    {"FREE_SHIPPING_THRESHOLD", "0"},
		"bad cost":          {"STANDARD_SHIPPING_COST", "fifty"},
		"unknown storage":   {"STORAGE_DRIVER", "redis"},
		"negative idle":     {"CART_IDLE_TIMEOUT", "-1m"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
