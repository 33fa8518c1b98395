package binance

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/exchangeInfo", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"timezone": "UTC",
			"symbols": [
				{"symbol": "BTCUSDT", "baseAsset": "BTC", "quoteAsset": "USDT", "status": "TRADING"},
				{"symbol": "ETHBTC", "baseAsset": "ETH", "quoteAsset": "BTC", "status": "TRADING"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	infos, err := c.ExchangeInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "BTCUSDT", infos[0].Symbol)
	assert.Equal(t, "BTC", infos[0].BaseAsset)
	assert.Equal(t, "USDT", infos[0].QuoteAsset)
}

func TestExchangeInfoMissingSymbolsList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"timezone": "UTC"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.ExchangeInfo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing symbols list")
}

func TestBookTickersArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/bookTicker", r.URL.Path)

		var symbols []string
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("symbols")), &symbols))
		assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, symbols)

		_, _ = w.Write([]byte(`[
			{"symbol": "BTCUSDT", "bidPrice": "60000.00", "bidQty": "1.5", "askPrice": "60010.00", "askQty": "2.0"},
			{"symbol": "ETHUSDT", "bidPrice": "3000.00", "bidQty": "10", "askPrice": "3001.00", "askQty": "8"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	tickers, err := c.BookTickers(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)
	require.Len(t, tickers, 2)
	assert.Equal(t, "BTCUSDT", tickers[0].Symbol)
	assert.Equal(t, 60000.0, tickers[0].BidPrice)
	assert.Equal(t, 1.5, tickers[0].BidQty)
	assert.Equal(t, 60010.0, tickers[0].AskPrice)
	assert.Equal(t, 2.0, tickers[0].AskQty)
}

func TestBookTickersSingletonObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol": "BTCUSDT", "bidPrice": "60000", "bidQty": "1", "askPrice": "60010", "askQty": "1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	tickers, err := c.BookTickers(context.Background(), []string{"BTCUSDT"})
	require.NoError(t, err)
	require.Len(t, tickers, 1)
	assert.Equal(t, "BTCUSDT", tickers[0].Symbol)
	assert.Equal(t, 60000.0, tickers[0].BidPrice)
}

func TestBookTickersUnparsableNumberBecomesNaN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol": "BTCUSDT", "bidPrice": "oops", "bidQty": "1", "askPrice": "60010", "askQty": "1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	tickers, err := c.BookTickers(context.Background(), []string{"BTCUSDT"})
	require.NoError(t, err)
	require.Len(t, tickers, 1)
	assert.True(t, math.IsNaN(tickers[0].BidPrice))
	assert.Equal(t, 60010.0, tickers[0].AskPrice)
}

func TestBookTickersNoSymbols(t *testing.T) {
	c := NewClient("http://localhost:1", 0)
	_, err := c.BookTickers(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no symbols")
}

func TestBookTickersHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.BookTickers(context.Background(), []string{"NOPE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 418")
	assert.Contains(t, err.Error(), "Invalid symbol")
}

func TestTickerPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"symbol": "BTCUSDT", "price": "60005.12"},
			{"symbol": "ETHUSDT", "price": "3000.50"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	prices, err := c.TickerPrices(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 60005.12, prices[0].Price)
	assert.Equal(t, "ETHUSDT", prices[1].Symbol)
}

func TestTickerPricesSingletonObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol": "BTCUSDT", "price": "60005.12"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	prices, err := c.TickerPrices(context.Background(), []string{"BTCUSDT"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 60005.12, prices[0].Price)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, MainnetBaseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
	assert.NotZero(t, c.httpClient.Timeout)
}
