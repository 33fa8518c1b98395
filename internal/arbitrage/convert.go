package arbitrage

import (
	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// converter performs single-hop conversions against a fixed metadata set and
// quote map, charging a constant taker fee per executed hop.
type converter struct {
	meta    *domain.ExchangeMetadata
	feeRate float64
}

// convert moves amount units of from into to using top-of-book prices.
//
// A direct listing (base=from, quote=to) means selling from at the bid;
// failing that, an inverse listing (base=to, quote=from) means buying to at
// the ask. When both directions are listed only the direct one is used. The
// fee is applied once, multiplicatively, on the hop's resulting quantity.
// ok is false when neither listing resolves to a usable quote.
func (c converter) convert(amount float64, from, to domain.Asset, quotes map[string]domain.Quote) (float64, domain.ConversionStep, bool) {
	if ins, ok := c.meta.InstrumentFor(from, to); ok {
		if q, ok := quotes[ins.Symbol]; ok && q.Usable() {
			received := amount * q.BidPrice * (1 - c.feeRate)
			step := domain.ConversionStep{
				Side:   domain.SideSell,
				Symbol: ins.Symbol,
				From:   from,
				To:     to,
				Price:  q.BidPrice,
			}
			return received, step, true
		}
	}

	if ins, ok := c.meta.InstrumentFor(to, from); ok {
		if q, ok := quotes[ins.Symbol]; ok && q.Usable() {
			received := (amount / q.AskPrice) * (1 - c.feeRate)
			step := domain.ConversionStep{
				Side:   domain.SideBuy,
				Symbol: ins.Symbol,
				From:   from,
				To:     to,
				Price:  q.AskPrice,
			}
			return received, step, true
		}
	}

	return 0, domain.ConversionStep{}, false
}
