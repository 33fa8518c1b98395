package arbitrage

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// quoteChunkSize is the maximum number of symbols per bookTicker request.
const quoteChunkSize = 100

// QuoteProvider fetches best bid/ask quotes for batches of symbols.
type QuoteProvider struct {
	client domain.MarketDataClient
	logger *slog.Logger
}

// NewQuoteProvider creates a QuoteProvider backed by the given client.
func NewQuoteProvider(client domain.MarketDataClient, logger *slog.Logger) *QuoteProvider {
	return &QuoteProvider{
		client: client,
		logger: logger.With(slog.String("component", "quote_provider")),
	}
}

// Quotes fetches the best bid/ask for the given symbols and returns a map
// keyed by symbol. Symbols are normalized and deduplicated, then fetched in
// chunks of at most 100 per request; chunks run concurrently and fail
// independently — a failed chunk is logged and contributes no entries.
// Entries with a missing symbol or a non-finite/non-positive price or
// quantity are dropped. When everything fails the map is empty, not nil.
func (p *QuoteProvider) Quotes(ctx context.Context, symbols []string) map[string]domain.Quote {
	out := make(map[string]domain.Quote)

	unique := normalizeSymbols(symbols)
	if len(unique) == 0 {
		return out
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, chunk := range chunkSymbols(unique, quoteChunkSize) {
		chunk := chunk
		g.Go(func() error {
			tickers, err := p.client.BookTickers(ctx, chunk)
			if err != nil {
				p.logger.Warn("book ticker chunk failed",
					slog.Int("symbols", len(chunk)),
					slog.String("error", err.Error()),
				)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, t := range tickers {
				if t.Symbol == "" {
					continue
				}
				q := domain.Quote{
					BidPrice: t.BidPrice,
					BidQty:   t.BidQty,
					AskPrice: t.AskPrice,
					AskQty:   t.AskQty,
				}
				if !q.Usable() {
					continue
				}
				out[t.Symbol] = q
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// normalizeSymbols trims, uppercases, and deduplicates a symbol list,
// preserving first-seen order and dropping empties.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// chunkSymbols splits a list into consecutive chunks of at most size.
func chunkSymbols(symbols []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunks = append(chunks, symbols[start:end])
	}
	return chunks
}
