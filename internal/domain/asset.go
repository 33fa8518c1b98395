package domain

import "strings"

// Asset is a currency ticker, normalized to an uppercase, trimmed string.
type Asset string

// NormalizeAsset trims whitespace and uppercases a raw ticker string.
func NormalizeAsset(s string) Asset {
	return Asset(strings.ToUpper(strings.TrimSpace(s)))
}

// Instrument is a tradable pair on the venue. Base and Quote are ordered:
// the presence of (base=X, quote=Y) says nothing about (base=Y, quote=X).
type Instrument struct {
	Symbol string
	Base   Asset
	Quote  Asset
}

type pairKey struct {
	base  Asset
	quote Asset
}

// ExchangeMetadata is the set of all instruments known to the venue at fetch
// time. Symbols and (base, quote) pairs are unique within the set.
type ExchangeMetadata struct {
	bySymbol map[string]Instrument
	byPair   map[pairKey]Instrument
}

// NewExchangeMetadata builds the lookup indexes from a list of instruments.
// Later duplicates (by symbol or by pair) are ignored.
func NewExchangeMetadata(instruments []Instrument) *ExchangeMetadata {
	m := &ExchangeMetadata{
		bySymbol: make(map[string]Instrument, len(instruments)),
		byPair:   make(map[pairKey]Instrument, len(instruments)),
	}
	for _, ins := range instruments {
		if ins.Symbol == "" {
			continue
		}
		if _, ok := m.bySymbol[ins.Symbol]; ok {
			continue
		}
		key := pairKey{base: ins.Base, quote: ins.Quote}
		if _, ok := m.byPair[key]; ok {
			continue
		}
		m.bySymbol[ins.Symbol] = ins
		m.byPair[key] = ins
	}
	return m
}

// InstrumentFor returns the instrument whose base and quote assets match the
// given ordered pair.
func (m *ExchangeMetadata) InstrumentFor(base, quote Asset) (Instrument, bool) {
	ins, ok := m.byPair[pairKey{base: base, quote: quote}]
	return ins, ok
}

// InstrumentBySymbol returns the instrument with the given venue symbol.
func (m *ExchangeMetadata) InstrumentBySymbol(symbol string) (Instrument, bool) {
	ins, ok := m.bySymbol[symbol]
	return ins, ok
}

// Len returns the number of instruments in the set.
func (m *ExchangeMetadata) Len() int {
	return len(m.bySymbol)
}
