package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.App.Port != "8080" {
		t.Errorf("port: got %q", cfg.App.Port)
	}
	if cfg.App.StoreDriver != DriverPostgres {
		t.Errorf("driver: got %q", cfg.App.StoreDriver)
	}
	if !cfg.Pricing.VAT.Equal(decimal.RequireFromString("0.18")) {
		t.Errorf("vat: got %s", cfg.Pricing.VAT)
	}
	if !cfg.Pricing.MaxTotalMarkup.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("max markup: got %s", cfg.Pricing.MaxTotalMarkup)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("SALES_TAX_RATE", "0.07")
	t.Setenv("VAT_RATE", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/store")

	cfg := Load()

	if cfg.App.Port != "9090" || cfg.App.StoreDriver != DriverMemory {
		t.Errorf("app: got %+v", cfg.App)
	}
	if cfg.App.Location != time.UTC {
		t.Errorf("location: got %v", cfg.App.Location)
	}
	if !cfg.Pricing.SalesTax.Equal(decimal.RequireFromString("0.07")) {
		t.Errorf("sales tax: got %s", cfg.Pricing.SalesTax)
	}
	if !cfg.Pricing.VAT.Equal(decimal.RequireFromString("0.18")) {
		t.Errorf("malformed vat should fall back, got %s", cfg.Pricing.VAT)
	}
	if cfg.Database.DSN() != "postgres://u:p@db:5432/store" {
		t.Errorf("dsn: got %q", cfg.Database.DSN())
	}
}

func TestDSNFromParts(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	want := "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC"
	if got := c.DSN(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
