package app

import (
	"context"
	"fmt"
	"log/slog"

	redcache "github.com/OleksandrChernysh/binance-trading-bot/internal/cache/redis"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/config"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/notify"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/platform/binance"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Binance    *binance.Client
	PriceCache domain.PriceCache
	SignalBus  domain.SignalBus
	Notifier   *notify.Notifier
}

// needsRedis returns true for modes that publish events or cache prices.
func needsRedis(mode string) bool {
	return mode == "monitor"
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function to call on
// shutdown.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Binance market data client ---
	baseURL := cfg.Binance.BaseURL
	if cfg.Binance.Testnet {
		baseURL = binance.TestnetBaseURL
	}
	deps.Binance = binance.NewClient(baseURL, cfg.Binance.Timeout.Duration)

	// --- Redis (only for modes that need the bus and price cache) ---
	if needsRedis(cfg.Mode) {
		rc, err := redcache.New(ctx, redcache.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = rc.Close() })

		deps.PriceCache = redcache.NewPriceCache(rc)
		deps.SignalBus = redcache.NewSignalBus(rc)
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) > 0 {
		deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
	}

	return deps, cleanup, nil
}
