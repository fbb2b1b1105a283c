package marketkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marketsResponse = `[
  {
    "id": "bitcoin",
    "symbol": "btc",
    "name": "Bitcoin",
    "current_price": 43250.12,
    "market_cap": 850000000000,
    "market_cap_rank": 1,
    "total_volume": 15000000000,
    "price_change_percentage_24h": -2.345
  },
  {
    "id": "newcoin",
    "symbol": "new",
    "name": "New Coin",
    "current_price": 0.0001,
    "market_cap": null,
    "market_cap_rank": null,
    "total_volume": 12,
    "price_change_percentage_24h": null
  }
]`

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.RequestsPerMinute = 60_000
	return cfg
}

func fastRetry() Option {
	return WithRetryOptions(service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	})
}

func TestClient_MarketInfos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "bitcoin,newcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "test-key", r.Header.Get(apiKeyHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsResponse))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL+"/"), fastRetry())
	require.NoError(t, err)

	infos, err := client.MarketInfos(context.Background(), []string{"bitcoin", "newcoin"}, "EUR")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	btc := infos[0]
	assert.Equal(t, "bitcoin", btc.Coin.UID)
	assert.Equal(t, "BTC", btc.Coin.Code)
	assert.True(t, decimal.RequireFromString("43250.12").Equal(btc.Price))
	require.NotNil(t, btc.PriceChange24h)
	assert.True(t, decimal.RequireFromString("-2.345").Equal(*btc.PriceChange24h))
	assert.Equal(t, 1, btc.Rank)

	fresh := infos[1]
	assert.Nil(t, fresh.PriceChange24h)
	assert.True(t, fresh.MarketCap.IsZero())
	assert.Equal(t, 0, fresh.Rank)
}

func TestClient_EmptyRequest(t *testing.T) {
	client, err := NewClient(testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	infos, err := client.MarketInfos(context.Background(), nil, "usd")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantAttempts int32
		wantErr      error
	}{
		{name: "rate limited is retried", status: http.StatusTooManyRequests, wantAttempts: 3, wantErr: common.ErrRateLimit},
		{name: "server error is retried", status: http.StatusBadGateway, wantAttempts: 3, wantErr: common.ErrProviderUnavailable},
		{name: "client error fails fast", status: http.StatusBadRequest, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				attempts.Add(1)
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			client, err := NewClient(testConfig(server.URL), fastRetry())
			require.NoError(t, err)

			_, err = client.MarketInfos(context.Background(), []string{"bitcoin"}, "usd")
			require.Error(t, err)
			assert.Equal(t, tt.wantAttempts, attempts.Load())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, common.ErrMaxRetries)
			}
		})
	}
}

func TestClient_RecoversAfterTransientFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(marketsResponse))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), fastRetry())
	require.NoError(t, err)

	infos, err := client.MarketInfos(context.Background(), []string{"bitcoin", "newcoin"}, "usd")
	require.NoError(t, err)
	assert.Len(t, infos, 2)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), fastRetry())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.MarketInfos(ctx, []string{"bitcoin"}, "usd")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: common.ErrMissingConfig},
		{name: "bad scheme", mutate: func(c *Config) { c.BaseURL = "ftp://example.com" }, wantErr: common.ErrInvalidConfig},
		{name: "zero rate", mutate: func(c *Config) { c.RequestsPerMinute = 0 }, wantErr: common.ErrInvalidConfig},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: common.ErrInvalidConfig},
		{name: "negative ttl", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{header: "", want: 0},
		{header: "3", want: 3 * time.Second},
		{header: " 10 ", want: 10 * time.Second},
		{header: "-1", want: 0},
		{header: "Wed, 21 Oct 2026 07:28:00 GMT", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, retryAfter(tt.header))
		})
	}
}
