package arbitrage

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// fakeClient is an in-memory MarketDataClient for tests. BookTickers serves
// entries from tickers for the requested symbols; bookFn, when set, takes
// over entirely (used to fail specific chunks).
type fakeClient struct {
	instruments []domain.InstrumentInfo
	tickers     map[string]domain.BookTicker
	infoErr     error
	bookErr     error
	bookFn      func(symbols []string) ([]domain.BookTicker, error)

	mu        sync.Mutex
	infoCalls int
	bookCalls [][]string
}

func (f *fakeClient) ExchangeInfo(ctx context.Context) ([]domain.InstrumentInfo, error) {
	f.mu.Lock()
	f.infoCalls++
	f.mu.Unlock()
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.instruments, nil
}

func (f *fakeClient) BookTickers(ctx context.Context, symbols []string) ([]domain.BookTicker, error) {
	f.mu.Lock()
	f.bookCalls = append(f.bookCalls, symbols)
	f.mu.Unlock()

	if f.bookFn != nil {
		return f.bookFn(symbols)
	}
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	out := make([]domain.BookTicker, 0, len(symbols))
	for _, s := range symbols {
		if t, ok := f.tickers[s]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeClient) calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.bookCalls))
	copy(out, f.bookCalls)
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tk builds a fully usable book ticker.
func tk(symbol string, bid, ask float64) domain.BookTicker {
	return domain.BookTicker{Symbol: symbol, BidPrice: bid, BidQty: 1, AskPrice: ask, AskQty: 1}
}

// scenarioClient returns the BTC/ETH/USDT fixture used across scanner tests:
// BTCUSDT 60000/60010, ETHUSDT 3000/3001, ETHBTC 0.05/0.0501.
func scenarioClient() *fakeClient {
	return &fakeClient{
		instruments: []domain.InstrumentInfo{
			{Symbol: "BTCUSDT", BaseAsset: "BTC", QuoteAsset: "USDT"},
			{Symbol: "ETHUSDT", BaseAsset: "ETH", QuoteAsset: "USDT"},
			{Symbol: "ETHBTC", BaseAsset: "ETH", QuoteAsset: "BTC"},
		},
		tickers: map[string]domain.BookTicker{
			"BTCUSDT": tk("BTCUSDT", 60000, 60010),
			"ETHUSDT": tk("ETHUSDT", 3000, 3001),
			"ETHBTC":  tk("ETHBTC", 0.05, 0.0501),
		},
	}
}

// quoteMap converts raw tickers into a usable quote map for converter tests.
func quoteMap(tickers ...domain.BookTicker) map[string]domain.Quote {
	out := make(map[string]domain.Quote, len(tickers))
	for _, t := range tickers {
		out[t.Symbol] = domain.Quote{
			BidPrice: t.BidPrice,
			BidQty:   t.BidQty,
			AskPrice: t.AskPrice,
			AskQty:   t.AskQty,
		}
	}
	return out
}
