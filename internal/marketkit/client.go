package marketkit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	apiKeyHeader    = "x-cg-demo-api-key"
	maxErrorBodyLen = 512
)

// Client implements service.MarketInfoProvider against CoinGecko.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	retry      service.RetryOptions
}

var _ service.MarketInfoProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetryOptions overrides the retry policy.
func WithRetryOptions(opts service.RetryOptions) Option {
	return func(c *Client) { c.retry = opts }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a market data client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		logger:  slog.Default().With("component", "marketkit"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type coinMarket struct {
	ID                       string              `json:"id"`
	Symbol                   string              `json:"symbol"`
	Name                     string              `json:"name"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	MarketCap                decimal.NullDecimal `json:"market_cap"`
	TotalVolume              decimal.NullDecimal `json:"total_volume"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
	MarketCapRank            *int                `json:"market_cap_rank"`
}

// MarketInfos returns market data for coinUIDs priced in currencyCode.
// Coins unknown to the provider are omitted.
func (c *Client) MarketInfos(ctx context.Context, coinUIDs []string, currencyCode string) ([]market.MarketInfo, error) {
	if len(coinUIDs) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(currencyCode))
	q.Set("ids", strings.Join(coinUIDs, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(len(coinUIDs)))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")
	endpoint := c.baseURL + "/coins/markets?" + q.Encode()

	var markets []coinMarket
	err := common.WithRetry(ctx, c.retry, func(ctx context.Context) error {
		var err error
		markets, err = c.get(ctx, endpoint)
		return err
	})
	if err != nil {
		c.logger.Debug("Coin markets request failed", "error", err, "transient", common.IsRetryable(err))
		return nil, fmt.Errorf("coin markets request failed: %w", err)
	}

	infos := make([]market.MarketInfo, 0, len(markets))
	for _, m := range markets {
		info := market.MarketInfo{
			Coin: model.Coin{
				UID:  m.ID,
				Code: strings.ToUpper(m.Symbol),
				Name: m.Name,
			},
			Price:       m.CurrentPrice.Decimal,
			MarketCap:   m.MarketCap.Decimal,
			TotalVolume: m.TotalVolume.Decimal,
		}
		if m.PriceChangePercentage24h.Valid {
			diff := m.PriceChangePercentage24h.Decimal
			info.PriceChange24h = &diff
		}
		if m.MarketCapRank != nil {
			info.Rank = *m.MarketCapRank
		}
		infos = append(infos, info)
	}

	c.logger.Debug("Fetched coin markets", "requested", len(coinUIDs), "received", len(infos), "currency", currencyCode)
	return infos, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]coinMarket, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter canceled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, common.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, common.RateLimited(retryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: status %d", common.ErrProviderUnavailable, resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, common.Permanent(fmt.Errorf("market API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var markets []coinMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, common.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return markets, nil
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates and
// garbage yield zero so the caller falls back to its own schedule.
func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
