package binance

import (
	"math"
	"strconv"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// symbolEntry is one instrument record inside the exchangeInfo response.
type symbolEntry struct {
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Status     string `json:"status"`
}

// bookTickerEntry is one entry of the bookTicker response. Binance encodes
// all numbers as strings.
type bookTickerEntry struct {
	Symbol   string `json:"symbol"`
	BidPrice string `json:"bidPrice"`
	BidQty   string `json:"bidQty"`
	AskPrice string `json:"askPrice"`
	AskQty   string `json:"askQty"`
}

func (e bookTickerEntry) toDomain() domain.BookTicker {
	return domain.BookTicker{
		Symbol:   e.Symbol,
		BidPrice: parseNumber(e.BidPrice),
		BidQty:   parseNumber(e.BidQty),
		AskPrice: parseNumber(e.AskPrice),
		AskQty:   parseNumber(e.AskQty),
	}
}

// tickerPriceEntry is one entry of the ticker/price response.
type tickerPriceEntry struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (e tickerPriceEntry) toDomain() domain.TickerPrice {
	return domain.TickerPrice{
		Symbol: e.Symbol,
		Price:  parseNumber(e.Price),
	}
}

// parseNumber converts a string-encoded number to float64, yielding NaN for
// anything unparsable so downstream validation can drop the entry.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
