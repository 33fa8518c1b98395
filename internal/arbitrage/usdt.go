package arbitrage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

const usdtAsset = domain.Asset("USDT")

// USDT evaluates the six USDT-anchored 4-hop routes among three crypto
// assets. Only the "<asset>USDT" instruments are assumed relevant, so the
// symbols are synthesized directly and no metadata fetch is needed; a route
// fails only on a missing or unusable quote.
type USDT struct {
	quotes  *QuoteProvider
	feeRate float64
	logger  *slog.Logger
}

// NewUSDT creates a USDT-anchored scanner with the given per-hop taker fee.
func NewUSDT(client domain.MarketDataClient, feeRate float64, logger *slog.Logger) *USDT {
	return &USDT{
		quotes:  NewQuoteProvider(client, logger),
		feeRate: feeRate,
		logger:  logger.With(slog.String("component", "usdt_scanner")),
	}
}

// CheckAllPaths evaluates USDT->P->Q->USDT for every ordered pair (P, Q)
// drawn from exactly three crypto assets, starting from startingUsdt. It
// returns all six results; routes missing a usable quote come back invalid
// individually.
func (u *USDT) CheckAllPaths(ctx context.Context, cryptos []string, startingUsdt float64) ([]domain.PathResult, error) {
	if len(cryptos) != 3 {
		return nil, fmt.Errorf("%w: exactly 3 assets required, got %d", domain.ErrInvalidInput, len(cryptos))
	}
	if startingUsdt <= 0 {
		startingUsdt = 100
	}

	x := domain.NormalizeAsset(cryptos[0])
	y := domain.NormalizeAsset(cryptos[1])
	z := domain.NormalizeAsset(cryptos[2])
	if x == "" || y == "" || z == "" {
		return nil, fmt.Errorf("%w: assets must be non-empty tickers", domain.ErrInvalidInput)
	}

	symbols := []string{usdtSymbol(x), usdtSymbol(y), usdtSymbol(z)}
	quotes := u.quotes.Quotes(ctx, symbols)

	u.logger.Debug("evaluating usdt routes",
		slog.Int("symbols", len(symbols)),
		slog.Int("quotes", len(quotes)),
	)

	pairs := [][2]domain.Asset{
		{x, y}, {x, z},
		{y, x}, {y, z},
		{z, x}, {z, y},
	}
	results := make([]domain.PathResult, 0, len(pairs))
	for _, p := range pairs {
		results = append(results, u.evalRoute(quotes, startingUsdt, p[0], p[1]))
	}
	return results, nil
}

// evalRoute prices the route USDT -> a -> b -> USDT as four executed trades:
// buy a at ask, sell a at bid, buy b at ask, sell b at bid, with the taker
// fee charged independently on each hop's resulting quantity.
func (u *USDT) evalRoute(quotes map[string]domain.Quote, startUsdt float64, a, b domain.Asset) domain.PathResult {
	path := []domain.Asset{usdtAsset, a, b, usdtAsset}
	symA := usdtSymbol(a)
	symB := usdtSymbol(b)

	qa, okA := quotes[symA]
	qb, okB := quotes[symB]
	if !okA || !okB || !qa.Usable() || !qb.Usable() {
		return domain.PathResult{
			Path:   path,
			Reason: "No valid bid/ask found for one of the pairs",
		}
	}

	fee := 1 - u.feeRate

	qtyA := (startUsdt / qa.AskPrice) * fee
	usdtAfterA := qtyA * qa.BidPrice * fee
	qtyB := (usdtAfterA / qb.AskPrice) * fee
	endUsdt := qtyB * qb.BidPrice * fee

	profit := endUsdt - startUsdt
	return domain.PathResult{
		Path:        path,
		Valid:       true,
		StartAmount: startUsdt,
		EndAmount:   endUsdt,
		Profit:      profit,
		ProfitPct:   profit / startUsdt * 100,
		Steps: []domain.ConversionStep{
			{Side: domain.SideBuy, Symbol: symA, From: usdtAsset, To: a, Price: qa.AskPrice},
			{Side: domain.SideSell, Symbol: symA, From: a, To: usdtAsset, Price: qa.BidPrice},
			{Side: domain.SideBuy, Symbol: symB, From: usdtAsset, To: b, Price: qb.AskPrice},
			{Side: domain.SideSell, Symbol: symB, From: b, To: usdtAsset, Price: qb.BidPrice},
		},
	}
}

func usdtSymbol(a domain.Asset) string {
	return string(a) + string(usdtAsset)
}
