// Package binance implements the venue adapter for the Binance spot REST
// API. Only public market-data endpoints are used; no request signing.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

const (
	// MainnetBaseURL is the production spot API root.
	MainnetBaseURL = "https://api.binance.com"
	// TestnetBaseURL is the spot testnet API root.
	TestnetBaseURL = "https://testnet.binance.vision"
)

// Client is the REST client for Binance spot market data.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Binance market-data client. baseURL defaults to the
// mainnet API root when empty; timeout defaults to 15 seconds when zero.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = MainnetBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExchangeInfo returns the full spot instrument metadata set.
func (c *Client) ExchangeInfo(ctx context.Context) ([]domain.InstrumentInfo, error) {
	body, err := c.doGet(ctx, "/api/v3/exchangeInfo", nil)
	if err != nil {
		return nil, fmt.Errorf("binance: exchange info: %w", err)
	}

	var resp struct {
		Symbols []symbolEntry `json:"symbols"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("binance: decode exchange info: %w", err)
	}
	if resp.Symbols == nil {
		return nil, fmt.Errorf("binance: exchange info: missing symbols list")
	}

	out := make([]domain.InstrumentInfo, 0, len(resp.Symbols))
	for _, s := range resp.Symbols {
		out = append(out, domain.InstrumentInfo{
			Symbol:     s.Symbol,
			BaseAsset:  s.BaseAsset,
			QuoteAsset: s.QuoteAsset,
		})
	}
	return out, nil
}

// BookTickers returns the best bid/ask for the given symbols in one request.
// The endpoint answers with an array for multi-symbol queries; a singleton
// object response is normalized to a one-element array.
func (c *Client) BookTickers(ctx context.Context, symbols []string) ([]domain.BookTicker, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("binance: book tickers: no symbols given")
	}

	params, err := symbolsParam(symbols)
	if err != nil {
		return nil, fmt.Errorf("binance: book tickers: %w", err)
	}

	body, err := c.doGet(ctx, "/api/v3/ticker/bookTicker", params)
	if err != nil {
		return nil, fmt.Errorf("binance: book tickers: %w", err)
	}

	var entries []bookTickerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		var single bookTickerEntry
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, fmt.Errorf("binance: decode book tickers: %w", err)
		}
		entries = []bookTickerEntry{single}
	}

	out := make([]domain.BookTicker, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.toDomain())
	}
	return out, nil
}

// TickerPrices returns the last trade price for the given symbols.
func (c *Client) TickerPrices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("binance: ticker prices: no symbols given")
	}

	params, err := symbolsParam(symbols)
	if err != nil {
		return nil, fmt.Errorf("binance: ticker prices: %w", err)
	}

	body, err := c.doGet(ctx, "/api/v3/ticker/price", params)
	if err != nil {
		return nil, fmt.Errorf("binance: ticker prices: %w", err)
	}

	var entries []tickerPriceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		var single tickerPriceEntry
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, fmt.Errorf("binance: decode ticker prices: %w", err)
		}
		entries = []tickerPriceEntry{single}
	}

	out := make([]domain.TickerPrice, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.toDomain())
	}
	return out, nil
}

// symbolsParam encodes a symbol list as the JSON-array "symbols" query
// parameter the batch ticker endpoints expect.
func symbolsParam(symbols []string) (url.Values, error) {
	encoded, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encode symbols: %w", err)
	}
	params := url.Values{}
	params.Set("symbols", string(encoded))
	return params, nil
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Compile-time interface checks.
var (
	_ domain.MarketDataClient = (*Client)(nil)
	_ domain.TickerSource     = (*Client)(nil)
)
