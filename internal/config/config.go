package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Storage     StorageConfig
	API         APIConfig
	Shipping    ShippingConfig
	Admin       AdminConfig
	Banner      BannerConfig
	Cart        CartConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StorageConfig selects where device storage lives: "memory" or "postgres"
type StorageConfig struct {
	Driver string
}

// APIConfig points at the storefront REST backend
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ShippingConfig struct {
	FreeThreshold decimal.Decimal
	StandardCost  decimal.Decimal
}

type AdminConfig struct {
	KeyHash string
}

// CartConfig bounds the per-user cart services the server keeps
type CartConfig struct {
	IdleTimeout time.Duration
}

type BannerConfig struct {
	Enabled  bool
	Title    string
	Subtitle string
	ImageURL string
	Link     string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", "500")
	viper.SetDefault("STANDARD_SHIPPING_COST", "50")
	viper.SetDefault("BANNER_ENABLED", "true")
	viper.SetDefault("CART_IDLE_TIMEOUT", "30m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	idle, err := time.ParseDuration(getEnvOrViper("CART_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CART_IDLE_TIMEOUT: %w", err)
	}

	threshold, err := decimal.NewFromString(getEnvOrViper("FREE_SHIPPING_THRESHOLD", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: %w", err)
	}
	shippingCost, err := decimal.NewFromString(getEnvOrViper("STANDARD_SHIPPING_COST", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_SHIPPING_COST: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnvOrViper("STORAGE_DRIVER", "memory")),
		},
		API: APIConfig{
			BaseURL: strings.TrimSuffix(getEnvOrViper("API_BASE_URL", "http://localhost:5000"), "/"),
			Timeout: timeout,
		},
		Shipping: ShippingConfig{
			FreeThreshold: threshold,
			StandardCost:  shippingCost,
		},
		Admin: AdminConfig{
			KeyHash: getEnvOrViper("ADMIN_API_KEY_HASH", ""),
		},
		Banner: BannerConfig{
			Enabled:  getEnvOrViper("BANNER_ENABLED", "true") == "true",
			Title:    getEnvOrViper("BANNER_TITLE", "عروض الموسم"),
			Subtitle: getEnvOrViper("BANNER_SUBTITLE", "خصومات حتى 50% على تشكيلة مختارة"),
			ImageURL: getEnvOrViper("BANNER_IMAGE_URL", ""),
			Link:     getEnvOrViper("BANNER_LINK", "/products"),
		},
		Cart: CartConfig{
			IdleTimeout: idle,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values Load cannot default safely
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}
	if c.Cart.IdleTimeout < 0 {
		return fmt.Errorf("CART_IDLE_TIMEOUT must not be negative")
	}
	if !c.Shipping.FreeThreshold.IsPositive() {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD must be positive")
	}
	if c.Shipping.StandardCost.IsNegative() {
		return fmt.Errorf("STANDARD_SHIPPING_COST must not be negative")
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be memory or postgres, got %q", c.Storage.Driver)
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
