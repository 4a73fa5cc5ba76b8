package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Market   MarketConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds the rotating log file settings. The TUI owns stdout, so
// logs never go to the terminal.
type LogConfig struct {
	Path    string
	Level   string
	MaxSize int // megabytes before rotation
}

// MarketConfig holds data-source settings.
type MarketConfig struct {
	Exchange      string
	DefaultSymbol string
	Refresh       bool // refresh the instrument catalog from the exchange at startup
	Stream        bool // subscribe to the live miniTicker stream
}

// UIConfig holds workspace presentation settings.
type UIConfig struct {
	SnapToGrid bool
	LayoutName string
}

// Load reads configuration from file and env. Env var overrides use prefix COINDECK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "coindeck", "coindeck.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "coindeck", "coindeck.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("market.exchange", "binance")
	v.SetDefault("market.default_symbol", "BTCUSDT")
	v.SetDefault("market.refresh", true)
	v.SetDefault("market.stream", true)
	v.SetDefault("ui.snap_to_grid", true)
	v.SetDefault("ui.layout_name", "default")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COINDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "coindeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COINDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the in-app settings to persist the snap default and the
// preferred exchange.
func Save(cfg Config) error {
	path := os.Getenv("COINDECK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "coindeck", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size", cfg.Log.MaxSize)
	v.Set("market.exchange", cfg.Market.Exchange)
	v.Set("market.default_symbol", cfg.Market.DefaultSymbol)
	v.Set("market.refresh", cfg.Market.Refresh)
	v.Set("market.stream", cfg.Market.Stream)
	v.Set("ui.snap_to_grid", cfg.UI.SnapToGrid)
	v.Set("ui.layout_name", cfg.UI.LayoutName)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
