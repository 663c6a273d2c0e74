package config

import (
	"fmt"
	"log"
	"time"

	"computer-store-ws/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Pricing   pricing.Rates
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	StoreDriver string
	// Location decides where a calendar day (cash limits, weeks, months) starts
	Location *time.Location
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	v.SetDefault("APP_NAME", "computer-store-ws")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_TIMEZONE", "Europe/Moscow")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "computer_store")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("VAT_RATE", pricing.DefaultVATRate.String())
	v.SetDefault("SALES_TAX_RATE", pricing.DefaultSalesTaxRate.String())
	v.SetDefault("MAX_TOTAL_MARKUP", pricing.DefaultMaxTotalMarkup.String())

	timezone := v.GetString("APP_TIMEZONE")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, falling back to UTC: %v", timezone, err)
		location = time.UTC
	}

	return &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			StoreDriver: v.GetString("STORE_DRIVER"),
			Location:    location,
		},
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			Timezone:     location.String(),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Pricing: pricing.Rates{
			VAT:            rate(v, "VAT_RATE", pricing.DefaultVATRate),
			SalesTax:       rate(v, "SALES_TAX_RATE", pricing.DefaultSalesTaxRate),
			MaxTotalMarkup: rate(v, "MAX_TOTAL_MARKUP", pricing.DefaultMaxTotalMarkup),
		},
	}
}

// rate parses a decimal fraction, keeping the default on malformed input
func rate(v *viper.Viper, key string, fallback decimal.Decimal) decimal.Decimal {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

// DSN prefers DATABASE_URL and builds a key/value DSN otherwise
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.Timezone,
	)
}
