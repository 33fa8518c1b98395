package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/arbitrage"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/service"
)

// scanTimeout bounds a single monitor-mode scan.
const scanTimeout = time.Minute

// newScanService builds the scan service shared by all modes.
func (a *App) newScanService(deps *Dependencies) *service.ScanService {
	logger := a.logger
	return service.NewScanService(service.ScanServiceParams{
		Config: service.ScanConfig{
			Assets:         a.cfg.Arbitrage.Assets,
			StartingAmount: a.cfg.Arbitrage.StartingAmount,
			UsdtAssets:     a.cfg.Arbitrage.UsdtAssets,
			StartingUsdt:   a.cfg.Arbitrage.StartingUsdt,
			MinProfitPct:   a.cfg.Arbitrage.MinProfitPct,
			Channel:        a.cfg.Monitor.Channel,
			CachePrices:    a.cfg.Monitor.CachePrices,
		},
		Triangle: arbitrage.NewTriangle(deps.Binance, a.cfg.Arbitrage.FeeRate, logger),
		USDT:     arbitrage.NewUSDT(deps.Binance, a.cfg.Arbitrage.FeeRate, logger),
		Prices:   arbitrage.NewPrices(deps.Binance, logger),
		Cache:    deps.PriceCache,
		Bus:      deps.SignalBus,
		Notifier: deps.Notifier,
		Logger:   logger,
	})
}

// ScanMode runs the general 3-asset scanner once and prints the report.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	svc := a.newScanService(deps)
	results, err := svc.ScanTriangle(ctx)
	if err != nil {
		return fmt.Errorf("app: triangle scan: %w", err)
	}
	for _, line := range service.FormatResults("Triangle Arbitrage Check", results) {
		fmt.Println(line)
	}
	return nil
}

// UsdtMode runs the USDT-anchored scanner once and prints the report.
func (a *App) UsdtMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting usdt mode")

	svc := a.newScanService(deps)
	results, err := svc.ScanUSDT(ctx)
	if err != nil {
		return fmt.Errorf("app: usdt scan: %w", err)
	}
	for _, line := range service.FormatResults("Triangle Arbitrage (USDT-only)", results) {
		fmt.Println(line)
	}
	return nil
}

// MonitorMode scans on the configured cron schedule, publishing profitable
// cycles to the signal bus and notifying operators, until the context is
// cancelled. One scan runs immediately at startup.
func (a *App) MonitorMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting monitor mode",
		slog.String("cron", a.cfg.Monitor.Cron),
		slog.String("channel", a.cfg.Monitor.Channel),
	)

	svc := a.newScanService(deps)

	runScan := func() {
		sctx, cancel := context.WithTimeout(ctx, scanTimeout)
		defer cancel()
		if err := svc.ScanOnce(sctx); err != nil {
			a.logger.Error("scan failed", slog.String("error", err.Error()))
		}
	}

	runScan()

	c := cron.New()
	if _, err := c.AddFunc(a.cfg.Monitor.Cron, runScan); err != nil {
		return fmt.Errorf("app: invalid cron schedule %q: %w", a.cfg.Monitor.Cron, err)
	}
	c.Start()
	defer func() {
		// Wait for an in-flight scan before returning.
		<-c.Stop().Done()
	}()

	<-ctx.Done()
	return ctx.Err()
}
