package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMarketConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		check   func(t *testing.T, url, key string, rpm int, ttl time.Duration)
		wantErr error
	}{
		{
			name:  "defaults",
			setup: func(t *testing.T) { t.Setenv("COINGECKO_API_KEY", "") },
			check: func(t *testing.T, url, key string, rpm int, ttl time.Duration) {
				assert.Equal(t, "https://api.coingecko.com/api/v3", url)
				assert.Empty(t, key)
				assert.Equal(t, 30, rpm)
				assert.Equal(t, 5*time.Minute, ttl)
			},
		},
		{
			name: "viper values win over environment",
			setup: func(t *testing.T) {
				t.Setenv("COINGECKO_API_KEY", "from-env")
				viper.Set("market.api_key", "from-config")
				viper.Set("market.base_url", "https://pro-api.coingecko.com/api/v3")
				viper.Set("market.requests_per_minute", 500)
				viper.Set("market.cache_ttl", "0s")
			},
			check: func(t *testing.T, url, key string, rpm int, ttl time.Duration) {
				assert.Equal(t, "https://pro-api.coingecko.com/api/v3", url)
				assert.Equal(t, "from-config", key)
				assert.Equal(t, 500, rpm)
				assert.Equal(t, time.Duration(0), ttl)
			},
		},
		{
			name:  "environment fallback",
			setup: func(t *testing.T) { t.Setenv("COINGECKO_API_KEY", "from-env") },
			check: func(t *testing.T, _, key string, _ int, _ time.Duration) {
				assert.Equal(t, "from-env", key)
			},
		},
		{
			name:    "invalid url",
			setup:   func(t *testing.T) { viper.Set("market.base_url", "not a url") },
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			tt.setup(t)

			cfg, err := LoadMarketConfig()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg.BaseURL, cfg.APIKey, cfg.RequestsPerMinute, cfg.CacheTTL)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name       string
		configured string
		dataHome   string
		env        map[string]string
		want       string
	}{
		{name: "default under home", want: filepath.Join(home, ".local", "share", "wallet", "wallet.db")},
		{name: "xdg data home", dataHome: "/srv/data", want: "/srv/data/wallet/wallet.db"},
		{name: "relative xdg data home ignored", dataHome: "data", want: filepath.Join(home, ".local", "share", "wallet", "wallet.db")},
		{name: "configured tilde", configured: "~/wallets/main.db", want: filepath.Join(home, "wallets", "main.db")},
		{name: "configured env var", configured: "$WALLET_DIR/w.db", env: map[string]string{"WALLET_DIR": "/data"}, want: "/data/w.db"},
		{name: "env var expanding to tilde", configured: "$WALLET_DIR/w.db", env: map[string]string{"WALLET_DIR": "~/vault"}, want: filepath.Join(home, "vault", "w.db")},
		{name: "configured wins over xdg", configured: "/tmp/w.db", dataHome: "/srv/data", want: "/tmp/w.db"},
		{name: "relative path cleaned", configured: "./state/../w.db", want: "w.db"},
		{name: "in memory", configured: ":memory:", want: ":memory:"},
		{name: "blank setting uses default", configured: "   ", want: filepath.Join(home, ".local", "share", "wallet", "wallet.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			t.Setenv("HOME", home)
			t.Setenv("XDG_DATA_HOME", tt.dataHome)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.configured != "" {
				viper.Set("database.path", tt.configured)
			}

			assert.Equal(t, tt.want, DatabasePath())
		})
	}
}
