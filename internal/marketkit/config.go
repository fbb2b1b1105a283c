// Package marketkit fetches coin market data from the CoinGecko API.
package marketkit

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
)

// Config holds the market data client settings.
type Config struct {
	BaseURL           string
	APIKey            string
	RequestsPerMinute int
	Timeout           time.Duration
	CacheTTL          time.Duration
}

// DefaultConfig returns the public CoinGecko endpoint settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.coingecko.com/api/v3",
		RequestsPerMinute: 30,
		Timeout:           15 * time.Second,
		CacheTTL:          5 * time.Minute,
	}
}

// Validate checks that the configuration can be used to build a client.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: market base URL is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid market base URL %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: requests per minute must be positive", common.ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", common.ErrInvalidConfig)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache TTL cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
