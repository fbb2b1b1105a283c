package config

import (
	"os"

	"github.com/Veraticus/bankwallet/internal/marketkit"
	"github.com/spf13/viper"
)

// LoadMarketConfig loads market data configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or WALLET_ env vars)
// 2. Direct environment variables (COINGECKO_API_KEY)
// 3. Default values
func LoadMarketConfig() (*marketkit.Config, error) {
	config := marketkit.DefaultConfig()

	if v := viper.GetString("market.base_url"); v != "" {
		config.BaseURL = v
	}
	if v := viper.GetString("market.api_key"); v != "" {
		config.APIKey = v
	}
	if v := viper.GetInt("market.requests_per_minute"); v != 0 {
		config.RequestsPerMinute = v
	}
	if v := viper.GetDuration("market.timeout"); v != 0 {
		config.Timeout = v
	}
	if viper.IsSet("market.cache_ttl") {
		config.CacheTTL = viper.GetDuration("market.cache_ttl")
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("COINGECKO_API_KEY")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
