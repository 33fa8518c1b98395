package arbitrage

import (
	"fmt"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// evalPath evaluates an ordered conversion cycle starting from one unit of
// path[0]. The first hop without a route marks the result invalid with the
// steps accumulated so far kept for diagnostics. Paths with no real hop are
// rejected.
func (c converter) evalPath(path []domain.Asset, quotes map[string]domain.Quote) domain.PathResult {
	result := domain.PathResult{Path: path}

	if len(path) < 2 {
		result.Reason = "path must contain at least one hop"
		return result
	}

	amount := 1.0
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		next, step, ok := c.convert(amount, from, to, quotes)
		if !ok {
			result.Reason = fmt.Sprintf("No route %s -> %s", from, to)
			return result
		}
		amount = next
		result.Steps = append(result.Steps, step)
	}

	result.Valid = true
	result.StartAmount = 1
	result.EndAmount = amount
	result.Profit = amount - 1
	result.ProfitPct = (amount - 1) * 100
	return result
}

// rescale linearly scales a unit-based result to a concrete starting
// amount. ProfitPct is scale-invariant and left untouched; invalid results
// pass through unchanged.
func rescale(r domain.PathResult, startingAmount float64) domain.PathResult {
	if !r.Valid {
		return r
	}
	r.StartAmount = startingAmount
	r.EndAmount *= startingAmount
	r.Profit *= startingAmount
	return r
}
