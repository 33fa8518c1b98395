package arbitrage

import (
	"context"
	"log/slog"
	"math"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// Prices fetches last-trade prices for batches of symbols, chunked the same
// way as the quote provider. Used to keep the monitor-mode price cache warm.
type Prices struct {
	source domain.TickerSource
	logger *slog.Logger
}

// NewPrices creates a Prices helper backed by the given ticker source.
func NewPrices(source domain.TickerSource, logger *slog.Logger) *Prices {
	return &Prices{
		source: source,
		logger: logger.With(slog.String("component", "price_fetcher")),
	}
}

// TickerPrices returns a symbol -> price map for the given symbols. Chunk
// failures are logged and skipped; entries with a missing symbol or a
// non-finite/non-positive price are dropped.
func (p *Prices) TickerPrices(ctx context.Context, symbols []string) map[string]float64 {
	out := make(map[string]float64)

	for _, chunk := range chunkSymbols(normalizeSymbols(symbols), quoteChunkSize) {
		list, err := p.source.TickerPrices(ctx, chunk)
		if err != nil {
			p.logger.Warn("ticker price chunk failed",
				slog.Int("symbols", len(chunk)),
				slog.String("error", err.Error()),
			)
			continue
		}
		for _, t := range list {
			if t.Symbol == "" || math.IsNaN(t.Price) || math.IsInf(t.Price, 0) || t.Price <= 0 {
				continue
			}
			out[t.Symbol] = t.Price
		}
	}
	return out
}
