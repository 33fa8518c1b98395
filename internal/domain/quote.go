package domain

import "math"

// Quote is the top-of-book state for one instrument: best bid and best ask
// with the quantity available at each.
type Quote struct {
	BidPrice float64
	BidQty   float64
	AskPrice float64
	AskQty   float64
}

// Usable reports whether the quote can back a conversion. All four fields
// must be finite and positive; anything else is treated as an absent quote.
func (q Quote) Usable() bool {
	return finitePositive(q.BidPrice) &&
		finitePositive(q.BidQty) &&
		finitePositive(q.AskPrice) &&
		finitePositive(q.AskQty)
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
