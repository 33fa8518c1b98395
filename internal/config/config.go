// Package config defines the top-level configuration for the trading bot
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by TRADEBOT_* environment
// variables.
type Config struct {
	Binance   BinanceConfig   `toml:"binance"`
	Arbitrage ArbitrageConfig `toml:"arbitrage"`
	Monitor   MonitorConfig   `toml:"monitor"`
	Redis     RedisConfig     `toml:"redis"`
	Notify    NotifyConfig    `toml:"notify"`
	Mode      string          `toml:"mode"`
	LogLevel  string          `toml:"log_level"`
}

// BinanceConfig holds the spot API endpoint parameters.
type BinanceConfig struct {
	BaseURL string   `toml:"base_url"`
	Testnet bool     `toml:"testnet"`
	Timeout duration `toml:"timeout"`
}

// ArbitrageConfig holds the scan parameters shared by both scanners.
type ArbitrageConfig struct {
	// FeeRate is the taker fee charged per hop (0.001 = 0.1%).
	FeeRate float64 `toml:"fee_rate"`
	// Assets is the 3-asset universe for the general scanner.
	Assets []string `toml:"assets"`
	// StartingAmount is the scan size in units of Assets[0].
	StartingAmount float64 `toml:"starting_amount"`
	// UsdtAssets is the 3-asset universe (non-USDT) for the USDT scanner.
	UsdtAssets []string `toml:"usdt_assets"`
	// StartingUsdt is the scan size in USDT for the USDT scanner.
	StartingUsdt float64 `toml:"starting_usdt"`
	// MinProfitPct is the profit percentage above which a cycle is
	// published and notified in monitor mode.
	MinProfitPct float64 `toml:"min_profit_pct"`
}

// MonitorConfig holds the continuous-scan parameters.
type MonitorConfig struct {
	// Cron is a robfig/cron schedule, e.g. "@every 30s".
	Cron string `toml:"cron"`
	// Channel is the Redis pub/sub channel for opportunity events.
	Channel string `toml:"channel"`
	// CachePrices enables refreshing the Redis price cache each scan.
	CachePrices bool `toml:"cache_prices"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "15s", "1m").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Binance: BinanceConfig{
			BaseURL: "https://api.binance.com",
			Testnet: false,
			Timeout: duration{15 * time.Second},
		},
		Arbitrage: ArbitrageConfig{
			FeeRate:        0.001,
			Assets:         []string{"BTC", "ETH", "USDT"},
			StartingAmount: 1.0,
			UsdtAssets:     []string{"BTC", "ETH", "SOL"},
			StartingUsdt:   100.0,
			MinProfitPct:   0.1,
		},
		Monitor: MonitorConfig{
			Cron:        "@every 30s",
			Channel:     "opportunities",
			CachePrices: true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		Notify: NotifyConfig{
			Events: []string{"opportunity", "error"},
		},
		Mode:     "scan",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":    true,
	"usdt":    true,
	"monitor": true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, usdt, monitor)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Binance
	if c.Binance.BaseURL == "" && !c.Binance.Testnet {
		errs = append(errs, "binance: base_url must not be empty")
	}
	if c.Binance.Timeout.Duration < 0 {
		errs = append(errs, "binance: timeout must not be negative")
	}

	// Arbitrage
	if c.Arbitrage.FeeRate < 0 || c.Arbitrage.FeeRate >= 1 {
		errs = append(errs, fmt.Sprintf("arbitrage: fee_rate must be in [0, 1), got %g", c.Arbitrage.FeeRate))
	}
	if len(c.Arbitrage.Assets) != 3 {
		errs = append(errs, fmt.Sprintf("arbitrage: assets must list exactly 3 tickers, got %d", len(c.Arbitrage.Assets)))
	}
	if len(c.Arbitrage.UsdtAssets) != 3 {
		errs = append(errs, fmt.Sprintf("arbitrage: usdt_assets must list exactly 3 tickers, got %d", len(c.Arbitrage.UsdtAssets)))
	}
	if c.Arbitrage.StartingAmount <= 0 {
		errs = append(errs, "arbitrage: starting_amount must be > 0")
	}
	if c.Arbitrage.StartingUsdt <= 0 {
		errs = append(errs, "arbitrage: starting_usdt must be > 0")
	}

	// Monitor mode needs a schedule and Redis connectivity.
	if strings.ToLower(c.Mode) == "monitor" {
		if c.Monitor.Cron == "" {
			errs = append(errs, "monitor: cron must not be empty")
		}
		if c.Monitor.Channel == "" {
			errs = append(errs, "monitor: channel must not be empty")
		}
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr is required for monitor mode")
		}
	}
	if c.Redis.Addr != "" && c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	// Notify — token and chat ID go together.
	tt := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tt != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
