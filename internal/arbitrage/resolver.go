package arbitrage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// Resolver maps ordered asset pairs to tradable instruments using exchange
// metadata. The metadata is fetched on first use and cached until
// Invalidate is called; concurrent first accesses may fetch twice, but the
// cached value is always a single, internally consistent fetch.
type Resolver struct {
	client domain.MarketDataClient
	logger *slog.Logger

	mu   sync.Mutex
	meta *domain.ExchangeMetadata
}

// NewResolver creates a Resolver backed by the given market-data client.
func NewResolver(client domain.MarketDataClient, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger.With(slog.String("component", "symbol_resolver")),
	}
}

// Metadata returns the cached exchange metadata, fetching it on first use.
// A malformed or empty instrument set yields domain.ErrMetadataUnavailable.
func (r *Resolver) Metadata(ctx context.Context) (*domain.ExchangeMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.meta != nil {
		return r.meta, nil
	}

	infos, err := r.client.ExchangeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: empty instrument set", domain.ErrMetadataUnavailable)
	}

	instruments := make([]domain.Instrument, 0, len(infos))
	for _, in := range infos {
		instruments = append(instruments, domain.Instrument{
			Symbol: strings.ToUpper(strings.TrimSpace(in.Symbol)),
			Base:   domain.NormalizeAsset(in.BaseAsset),
			Quote:  domain.NormalizeAsset(in.QuoteAsset),
		})
	}

	meta := domain.NewExchangeMetadata(instruments)
	r.logger.Debug("exchange metadata loaded", slog.Int("instruments", meta.Len()))
	r.meta = meta
	return meta, nil
}

// InstrumentFor looks up the instrument with the given ordered (base, quote)
// pair. Base/quote is directional: BTCETH and ETHBTC are distinct listings.
func (r *Resolver) InstrumentFor(ctx context.Context, base, quote domain.Asset) (domain.Instrument, bool, error) {
	meta, err := r.Metadata(ctx)
	if err != nil {
		return domain.Instrument{}, false, err
	}
	ins, ok := meta.InstrumentFor(base, quote)
	return ins, ok, nil
}

// RequiredSymbols returns the venue symbols of every instrument that exists
// for some ordered pair (i, j), i != j, within the given asset set. Symbols
// are deduplicated in insertion order.
func (r *Resolver) RequiredSymbols(ctx context.Context, assets []domain.Asset) ([]string, error) {
	meta, err := r.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for i := range assets {
		for j := range assets {
			if i == j {
				continue
			}
			ins, ok := meta.InstrumentFor(assets[i], assets[j])
			if !ok || seen[ins.Symbol] {
				continue
			}
			seen[ins.Symbol] = true
			out = append(out, ins.Symbol)
		}
	}
	return out, nil
}

// Invalidate drops the cached metadata so the next access fetches fresh.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meta = nil
}
