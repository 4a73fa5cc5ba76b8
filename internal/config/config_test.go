package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COINDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market.DefaultSymbol != "BTCUSDT" {
		t.Fatalf("default symbol = %q", cfg.Market.DefaultSymbol)
	}
	if cfg.Market.Exchange != "binance" {
		t.Fatalf("default exchange = %q", cfg.Market.Exchange)
	}
	if !cfg.UI.SnapToGrid {
		t.Fatalf("snap default should be on")
	}
	if cfg.UI.LayoutName != "default" {
		t.Fatalf("layout name = %q", cfg.UI.LayoutName)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COINDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("COINDECK_MARKET_DEFAULT_SYMBOL", "ETHUSDT")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market.DefaultSymbol != "ETHUSDT" {
		t.Fatalf("env override ignored: %q", cfg.Market.DefaultSymbol)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("COINDECK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.UI.SnapToGrid = false
	cfg.Market.Exchange = "kucoin"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.UI.SnapToGrid || got.Market.Exchange != "kucoin" {
		t.Fatalf("round trip lost settings: %+v", got)
	}
}
