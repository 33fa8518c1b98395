// Package service drives arbitrage scans and owns the presentation concerns
// around the core: reporting, publishing profitable cycles, notifications,
// and the optional price-cache refresh.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/arbitrage"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/notify"
)

// ScanConfig holds the per-scan parameters.
type ScanConfig struct {
	Assets         []string
	StartingAmount float64
	UsdtAssets     []string
	StartingUsdt   float64
	MinProfitPct   float64
	Channel        string
	CachePrices    bool
}

// ScanServiceParams bundles the collaborators of a ScanService. Prices,
// Cache, Bus, and Notifier are optional; one-shot modes run without them.
type ScanServiceParams struct {
	Config   ScanConfig
	Triangle *arbitrage.Triangle
	USDT     *arbitrage.USDT
	Prices   *arbitrage.Prices
	Cache    domain.PriceCache
	Bus      domain.SignalBus
	Notifier *notify.Notifier
	Logger   *slog.Logger
}

// ScanService runs the two scanners and fans their results out to the log,
// the signal bus, and the notifier.
type ScanService struct {
	cfg      ScanConfig
	triangle *arbitrage.Triangle
	usdt     *arbitrage.USDT
	prices   *arbitrage.Prices
	cache    domain.PriceCache
	bus      domain.SignalBus
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewScanService creates a ScanService from its parameters.
func NewScanService(p ScanServiceParams) *ScanService {
	return &ScanService{
		cfg:      p.Config,
		triangle: p.Triangle,
		usdt:     p.USDT,
		prices:   p.Prices,
		cache:    p.Cache,
		bus:      p.Bus,
		notifier: p.Notifier,
		logger:   p.Logger.With(slog.String("component", "scan_service")),
	}
}

// ScanTriangle runs the general 3-asset scanner once.
func (s *ScanService) ScanTriangle(ctx context.Context) ([]domain.PathResult, error) {
	return s.triangle.CheckPaths(ctx, s.cfg.Assets, s.cfg.StartingAmount)
}

// ScanUSDT runs the USDT-anchored scanner once.
func (s *ScanService) ScanUSDT(ctx context.Context) ([]domain.PathResult, error) {
	return s.usdt.CheckAllPaths(ctx, s.cfg.UsdtAssets, s.cfg.StartingUsdt)
}

// opportunityEvent is the JSON shape published to the signal bus for each
// profitable cycle.
type opportunityEvent struct {
	ScanID      string    `json:"scan_id"`
	Scanner     string    `json:"scanner"`
	Path        string    `json:"path"`
	StartAmount float64   `json:"start_amount"`
	EndAmount   float64   `json:"end_amount"`
	Profit      float64   `json:"profit"`
	ProfitPct   float64   `json:"profit_pct"`
	DetectedAt  time.Time `json:"detected_at"`
}

// ScanOnce runs both scanners concurrently under one scan ID, logs every
// result, and publishes/notifies cycles whose profit percentage meets the
// configured minimum.
func (s *ScanService) ScanOnce(ctx context.Context) error {
	scanID := uuid.New().String()
	logger := s.logger.With(slog.String("scan_id", scanID))

	var (
		triResults  []domain.PathResult
		usdtResults []domain.PathResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		triResults, err = s.triangle.CheckPaths(gctx, s.cfg.Assets, s.cfg.StartingAmount)
		return err
	})
	g.Go(func() error {
		var err error
		usdtResults, err = s.usdt.CheckAllPaths(gctx, s.cfg.UsdtAssets, s.cfg.StartingUsdt)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("service: scan: %w", err)
	}

	s.report(logger, "triangle", triResults)
	s.report(logger, "usdt", usdtResults)

	s.publishProfitable(ctx, logger, scanID, "triangle", triResults)
	s.publishProfitable(ctx, logger, scanID, "usdt", usdtResults)

	if s.cfg.CachePrices && s.prices != nil && s.cache != nil {
		s.refreshPriceCache(ctx, logger)
	}
	return nil
}

// publishProfitable forwards every valid cycle at or above MinProfitPct to
// the signal bus and the notifier. Delivery failures are logged, never
// propagated: a scan's results stand on their own.
func (s *ScanService) publishProfitable(ctx context.Context, logger *slog.Logger, scanID, scanner string, results []domain.PathResult) {
	for _, r := range results {
		if !r.Valid || r.ProfitPct < s.cfg.MinProfitPct {
			continue
		}

		logger.Info("profitable cycle found",
			slog.String("scanner", scanner),
			slog.String("path", r.Label()),
			slog.Float64("profit_pct", r.ProfitPct),
		)

		if s.bus != nil {
			ev := opportunityEvent{
				ScanID:      scanID,
				Scanner:     scanner,
				Path:        r.Label(),
				StartAmount: r.StartAmount,
				EndAmount:   r.EndAmount,
				Profit:      r.Profit,
				ProfitPct:   r.ProfitPct,
				DetectedAt:  time.Now().UTC(),
			}
			payload, err := json.Marshal(ev)
			if err == nil {
				if err := s.bus.Publish(ctx, s.cfg.Channel, payload); err != nil {
					logger.Warn("publish opportunity failed",
						slog.String("path", r.Label()),
						slog.String("error", err.Error()),
					)
				}
			}
		}

		if s.notifier != nil {
			title := fmt.Sprintf("Arbitrage opportunity (%s)", scanner)
			msg := fmt.Sprintf("%s\nprofit %.5f%% (%g -> %.8f)", r.Label(), r.ProfitPct, r.StartAmount, r.EndAmount)
			if err := s.notifier.Notify(ctx, "opportunity", title, msg); err != nil {
				logger.Warn("notify failed", slog.String("error", err.Error()))
			}
		}
	}
}

// refreshPriceCache stores the latest USDT-pair ticker prices of both asset
// universes in the price cache.
func (s *ScanService) refreshPriceCache(ctx context.Context, logger *slog.Logger) {
	symbols := make([]string, 0, len(s.cfg.Assets)+len(s.cfg.UsdtAssets))
	for _, a := range append(append([]string{}, s.cfg.Assets...), s.cfg.UsdtAssets...) {
		asset := domain.NormalizeAsset(a)
		if asset == "" || asset == "USDT" {
			continue
		}
		symbols = append(symbols, string(asset)+"USDT")
	}

	prices := s.prices.TickerPrices(ctx, symbols)
	now := time.Now().UTC()
	for sym, price := range prices {
		if err := s.cache.SetPrice(ctx, sym, price, now); err != nil {
			logger.Warn("price cache update failed",
				slog.String("symbol", sym),
				slog.String("error", err.Error()),
			)
		}
	}
	logger.Debug("price cache refreshed", slog.Int("symbols", len(prices)))
}
