package domain

import "context"

// BookTicker is one raw top-of-book entry as returned by the venue. Prices
// and quantities may be non-finite or non-positive; validation happens when
// entries are turned into Quotes.
type BookTicker struct {
	Symbol   string
	BidPrice float64
	BidQty   float64
	AskPrice float64
	AskQty   float64
}

// InstrumentInfo is one raw instrument metadata entry from the venue.
type InstrumentInfo struct {
	Symbol     string
	BaseAsset  string
	QuoteAsset string
}

// TickerPrice is one last-trade price entry from the venue.
type TickerPrice struct {
	Symbol string
	Price  float64
}

// MarketDataClient is the narrow venue interface the arbitrage core depends
// on. Any venue adapter implements these two methods; chunking of large
// symbol lists is the caller's responsibility.
type MarketDataClient interface {
	// BookTickers returns the best bid/ask for the given symbols.
	BookTickers(ctx context.Context, symbols []string) ([]BookTicker, error)
	// ExchangeInfo returns the full instrument metadata set.
	ExchangeInfo(ctx context.Context) ([]InstrumentInfo, error)
}

// TickerSource provides batched last-trade prices (monitor-mode cache feed).
type TickerSource interface {
	TickerPrices(ctx context.Context, symbols []string) ([]TickerPrice, error)
}
