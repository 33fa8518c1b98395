package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/arbitrage"
	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

type fakeMarket struct {
	instruments []domain.InstrumentInfo
	tickers     map[string]domain.BookTicker
	prices      map[string]float64
}

func (f *fakeMarket) ExchangeInfo(ctx context.Context) ([]domain.InstrumentInfo, error) {
	return f.instruments, nil
}

func (f *fakeMarket) BookTickers(ctx context.Context, symbols []string) ([]domain.BookTicker, error) {
	out := make([]domain.BookTicker, 0, len(symbols))
	for _, s := range symbols {
		if t, ok := f.tickers[s]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeMarket) TickerPrices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error) {
	out := make([]domain.TickerPrice, 0, len(symbols))
	for _, s := range symbols {
		if p, ok := f.prices[s]; ok {
			out = append(out, domain.TickerPrice{Symbol: s, Price: p})
		}
	}
	return out, nil
}

type fakeBus struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
}

func (f *fakeBus) Publish(ctx context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

type fakeCache struct {
	mu     sync.Mutex
	prices map[string]float64
}

func (f *fakeCache) SetPrice(ctx context.Context, symbol string, price float64, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prices == nil {
		f.prices = make(map[string]float64)
	}
	f.prices[symbol] = price
	return nil
}

func (f *fakeCache) GetPrice(ctx context.Context, symbol string) (float64, time.Time, error) {
	return 0, time.Time{}, domain.ErrNotFound
}

func (f *fakeCache) GetPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mkTicker(symbol string, bid, ask float64) domain.BookTicker {
	return domain.BookTicker{Symbol: symbol, BidPrice: bid, BidQty: 1, AskPrice: ask, AskQty: 1}
}

func testMarket() *fakeMarket {
	return &fakeMarket{
		instruments: []domain.InstrumentInfo{
			{Symbol: "BTCUSDT", BaseAsset: "BTC", QuoteAsset: "USDT"},
			{Symbol: "ETHUSDT", BaseAsset: "ETH", QuoteAsset: "USDT"},
			{Symbol: "ETHBTC", BaseAsset: "ETH", QuoteAsset: "BTC"},
			{Symbol: "SOLUSDT", BaseAsset: "SOL", QuoteAsset: "USDT"},
		},
		tickers: map[string]domain.BookTicker{
			"BTCUSDT": mkTicker("BTCUSDT", 60000, 60010),
			"ETHUSDT": mkTicker("ETHUSDT", 3000, 3001),
			"ETHBTC":  mkTicker("ETHBTC", 0.05, 0.0501),
			"SOLUSDT": mkTicker("SOLUSDT", 150, 150.2),
		},
		prices: map[string]float64{
			"BTCUSDT": 60005,
			"ETHUSDT": 3000.5,
			"SOLUSDT": 150.1,
		},
	}
}

func newTestService(market *fakeMarket, cfg ScanConfig, bus *fakeBus, cache *fakeCache) *ScanService {
	logger := testLogger()
	params := ScanServiceParams{
		Config:   cfg,
		Triangle: arbitrage.NewTriangle(market, 0.001, logger),
		USDT:     arbitrage.NewUSDT(market, 0.001, logger),
		Prices:   arbitrage.NewPrices(market, logger),
		Logger:   logger,
	}
	if bus != nil {
		params.Bus = bus
	}
	if cache != nil {
		params.Cache = cache
	}
	return NewScanService(params)
}

func scanCfg() ScanConfig {
	return ScanConfig{
		Assets:         []string{"BTC", "ETH", "USDT"},
		StartingAmount: 1,
		UsdtAssets:     []string{"BTC", "ETH", "SOL"},
		StartingUsdt:   100,
		MinProfitPct:   0.1,
		Channel:        "opportunities",
	}
}

func TestScanTriangle(t *testing.T) {
	svc := newTestService(testMarket(), scanCfg(), nil, nil)

	results, err := svc.ScanTriangle(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.Equal(t, "BTC -> ETH -> USDT -> BTC", results[0].Label())
}

func TestScanUSDT(t *testing.T) {
	svc := newTestService(testMarket(), scanCfg(), nil, nil)

	results, err := svc.ScanUSDT(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, r := range results {
		assert.True(t, r.Valid, r.Label())
	}
}

func TestScanOncePublishesCyclesAboveThreshold(t *testing.T) {
	bus := &fakeBus{}
	cfg := scanCfg()
	// Every valid cycle clears a deeply negative threshold.
	cfg.MinProfitPct = -10
	svc := newTestService(testMarket(), cfg, bus, nil)

	require.NoError(t, svc.ScanOnce(context.Background()))

	// 2 triangle cycles + 6 USDT routes, all valid in this book.
	require.Len(t, bus.payloads, 8)
	for _, ch := range bus.channels {
		assert.Equal(t, "opportunities", ch)
	}

	var ev struct {
		ScanID      string  `json:"scan_id"`
		Scanner     string  `json:"scanner"`
		Path        string  `json:"path"`
		StartAmount float64 `json:"start_amount"`
		ProfitPct   float64 `json:"profit_pct"`
	}
	require.NoError(t, json.Unmarshal(bus.payloads[0], &ev))
	assert.NotEmpty(t, ev.ScanID)
	assert.Equal(t, "triangle", ev.Scanner)
	assert.Equal(t, "BTC -> ETH -> USDT -> BTC", ev.Path)
	assert.Equal(t, 1.0, ev.StartAmount)

	// All events of one run share the scan ID.
	for _, payload := range bus.payloads[1:] {
		var other struct {
			ScanID string `json:"scan_id"`
		}
		require.NoError(t, json.Unmarshal(payload, &other))
		assert.Equal(t, ev.ScanID, other.ScanID)
	}
}

func TestScanOnceSkipsUnprofitableCycles(t *testing.T) {
	bus := &fakeBus{}
	// The fixture book loses money on every cycle, so the default threshold
	// publishes nothing.
	svc := newTestService(testMarket(), scanCfg(), bus, nil)

	require.NoError(t, svc.ScanOnce(context.Background()))
	assert.Empty(t, bus.payloads)
}

func TestScanOnceRefreshesPriceCache(t *testing.T) {
	cache := &fakeCache{}
	cfg := scanCfg()
	cfg.CachePrices = true
	svc := newTestService(testMarket(), cfg, nil, cache)

	require.NoError(t, svc.ScanOnce(context.Background()))

	// USDT itself is excluded; BTC and ETH appear in both universes.
	assert.Equal(t, map[string]float64{
		"BTCUSDT": 60005,
		"ETHUSDT": 3000.5,
		"SOLUSDT": 150.1,
	}, cache.prices)
}

func TestScanOnceWithoutOptionalCollaborators(t *testing.T) {
	cfg := scanCfg()
	cfg.MinProfitPct = -10
	svc := newTestService(testMarket(), cfg, nil, nil)

	assert.NoError(t, svc.ScanOnce(context.Background()))
}
