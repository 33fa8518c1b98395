// Package arbitrage implements triangular arbitrage scanning over spot
// top-of-book quotes: symbol resolution, chunked quote fetching, per-hop
// conversion arithmetic with a taker fee, and the two scanner variants.
package arbitrage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// Triangle evaluates both 3-hop conversion cycles among a set of three
// assets, resolving instruments from exchange metadata and fetching a single
// quote snapshot per scan.
type Triangle struct {
	resolver *Resolver
	quotes   *QuoteProvider
	feeRate  float64
	logger   *slog.Logger
}

// NewTriangle creates a Triangle scanner. feeRate is the taker fee charged
// per hop (0.001 = 0.1%).
func NewTriangle(client domain.MarketDataClient, feeRate float64, logger *slog.Logger) *Triangle {
	return &Triangle{
		resolver: NewResolver(client, logger),
		quotes:   NewQuoteProvider(client, logger),
		feeRate:  feeRate,
		logger:   logger.With(slog.String("component", "triangle_scanner")),
	}
}

// Invalidate drops the cached exchange metadata so the next scan fetches a
// fresh instrument set.
func (t *Triangle) Invalidate() {
	t.resolver.Invalidate()
}

// CheckPaths evaluates A->B->C->A and A->C->B->A for exactly three assets
// and returns both results, scaled to startingAmount units of the first
// asset. A wrong asset count is domain.ErrInvalidInput; a failed metadata
// fetch is domain.ErrMetadataUnavailable. Missing routes never error: the
// affected result comes back invalid with a reason.
func (t *Triangle) CheckPaths(ctx context.Context, assets []string, startingAmount float64) ([]domain.PathResult, error) {
	if len(assets) != 3 {
		return nil, fmt.Errorf("%w: exactly 3 assets required, got %d", domain.ErrInvalidInput, len(assets))
	}
	if startingAmount <= 0 {
		startingAmount = 1
	}

	a := domain.NormalizeAsset(assets[0])
	b := domain.NormalizeAsset(assets[1])
	c := domain.NormalizeAsset(assets[2])
	if a == "" || b == "" || c == "" {
		return nil, fmt.Errorf("%w: assets must be non-empty tickers", domain.ErrInvalidInput)
	}

	symbols, err := t.resolver.RequiredSymbols(ctx, []domain.Asset{a, b, c})
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []domain.PathResult{{
			Path:   []domain.Asset{a, b, c, a},
			Reason: "No trading pairs found among assets",
		}}, nil
	}

	quotes := t.quotes.Quotes(ctx, symbols)

	meta, err := t.resolver.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	conv := converter{meta: meta, feeRate: t.feeRate}

	t.logger.Debug("evaluating triangle cycles",
		slog.Int("symbols", len(symbols)),
		slog.Int("quotes", len(quotes)),
	)

	p1 := rescale(conv.evalPath([]domain.Asset{a, b, c, a}, quotes), startingAmount)
	p2 := rescale(conv.evalPath([]domain.Asset{a, c, b, a}, quotes), startingAmount)
	return []domain.PathResult{p1, p2}, nil
}
